// Package converter turns tracker snapshots into SIRI Vehicle Monitoring
// responses.
//
// # Usage
//
//	conv := converter.NewConverter(converter.ConverterOptions{
//	    Codespace: "FLEET",
//	    Interval:  5 * time.Second,
//	})
//	res := conv.VehicleMonitoring(tracker.Snapshot(), converter.Filter{Status: "online"})
//	body := formatter.NewResponseBuilder().BuildXML(res)
//
// # Reference formats
//
//   - VehicleRef: {codespace}:VehicleRef:{device_id}
//   - DataSource and ProducerRef: {codespace}
//
// # Status mapping
//
//	online  -> inProgress, Monitored=true
//	idle    -> assigned,   Monitored=true
//	offline -> notExpected, Monitored=false
package converter
