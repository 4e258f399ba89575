package formatter

import (
	"strconv"
	"strings"

	"github.com/theoremus-urban-solutions/fleet-tracker/siri"
)

// BuildXML serializes a SIRI response to XML
func (rb *responseBuilder) BuildXML(res *siri.SiriResponse) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString("<Siri xmlns=\"http://www.siri.org.uk/siri\" version=\"2.0\">")
	sd := res.Siri.ServiceDelivery
	b.WriteString("<ServiceDelivery>")
	writeElem(&b, "ResponseTimestamp", sd.ResponseTimestamp)
	writeElem(&b, "ProducerRef", sd.ProducerRef)
	for _, vm := range sd.VehicleMonitoringDelivery {
		writeVehicleMonitoringXML(&b, vm)
	}
	b.WriteString("</ServiceDelivery>")
	b.WriteString("</Siri>")
	return []byte(b.String())
}

func writeVehicleMonitoringXML(b *strings.Builder, vm siri.VehicleMonitoring) {
	b.WriteString("<VehicleMonitoringDelivery version=\"2.0\">")
	writeElem(b, "ResponseTimestamp", vm.ResponseTimestamp)
	writeElem(b, "ValidUntil", vm.ValidUntil)
	for _, va := range vm.VehicleActivity {
		b.WriteString("<VehicleActivity>")
		writeElem(b, "RecordedAtTime", va.RecordedAtTime)
		writeElem(b, "ValidUntilTime", va.ValidUntilTime)
		writeMVJXML(b, va.MonitoredVehicleJourney)
		b.WriteString("</VehicleActivity>")
	}
	b.WriteString("</VehicleMonitoringDelivery>")
}

func writeMVJXML(b *strings.Builder, mvj siri.MonitoredVehicleJourney) {
	b.WriteString("<MonitoredVehicleJourney>")
	writeElem(b, "VehicleJourneyName", mvj.VehicleJourneyName)
	b.WriteString("<Monitored>")
	b.WriteString(strconv.FormatBool(mvj.Monitored))
	b.WriteString("</Monitored>")
	writeElem(b, "DataSource", mvj.DataSource)
	if loc := mvj.VehicleLocation; loc != nil {
		b.WriteString("<VehicleLocation>")
		b.WriteString("<Longitude>")
		b.WriteString(strconv.FormatFloat(loc.Longitude, 'f', 6, 64))
		b.WriteString("</Longitude>")
		b.WriteString("<Latitude>")
		b.WriteString(strconv.FormatFloat(loc.Latitude, 'f', 6, 64))
		b.WriteString("</Latitude>")
		b.WriteString("</VehicleLocation>")
	}
	if mvj.Velocity != nil {
		b.WriteString("<Velocity>")
		b.WriteString(strconv.Itoa(*mvj.Velocity))
		b.WriteString("</Velocity>")
	}
	writeElem(b, "VehicleStatus", mvj.VehicleStatus)
	writeElem(b, "VehicleRef", mvj.VehicleRef)
	b.WriteString("</MonitoredVehicleJourney>")
}

// writeElem writes <name>value</name>, skipping empty values.
func writeElem(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	b.WriteString("<")
	b.WriteString(name)
	b.WriteString(">")
	b.WriteString(xmlEscape(value))
	b.WriteString("</")
	b.WriteString(name)
	b.WriteString(">")
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&apos;",
)

func xmlEscape(s string) string {
	return xmlReplacer.Replace(s)
}
