package gtfsrt

import (
	"fmt"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/fleet-tracker/tracking"
	"github.com/theoremus-urban-solutions/fleet-tracker/utils"
)

// Version is the GTFS-Realtime version written in feed headers.
const Version = "2.0"

// Feed builds a VehiclePositions FeedMessage from snap.
func Feed(snap tracking.Snapshot) *gtfsrtpb.FeedMessage {
	devices := snap.Devices()
	fm := &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: proto.String(Version),
			Incrementality:      gtfsrtpb.FeedHeader_FULL_DATASET.Enum(),
			Timestamp:           proto.Uint64(uint64(snap.TakenAt().Unix())),
		},
		Entity: make([]*gtfsrtpb.FeedEntity, 0, len(devices)),
	}
	for _, d := range devices {
		fm.Entity = append(fm.Entity, entity(d))
	}
	return fm
}

func entity(d tracking.Device) *gtfsrtpb.FeedEntity {
	return &gtfsrtpb.FeedEntity{
		Id: proto.String(d.ID),
		Vehicle: &gtfsrtpb.VehiclePosition{
			Vehicle: &gtfsrtpb.VehicleDescriptor{
				Id:    proto.String(d.ID),
				Label: proto.String(d.Name),
			},
			Position: &gtfsrtpb.Position{
				Latitude:  proto.Float32(float32(d.Lat)),
				Longitude: proto.Float32(float32(d.Lng)),
				Speed:     proto.Float32(float32(d.Speed / utils.KMHPerMPS)),
			},
			Timestamp: proto.Uint64(uint64(d.LastUpdate.Unix())),
		},
	}
}

// MarshalPB encodes snap as a binary protobuf feed.
func MarshalPB(snap tracking.Snapshot) ([]byte, error) {
	b, err := proto.Marshal(Feed(snap))
	if err != nil {
		return nil, fmt.Errorf("marshal feed: %w", err)
	}
	return b, nil
}

// MarshalJSON encodes snap as a protojson feed.
func MarshalJSON(snap tracking.Snapshot) ([]byte, error) {
	b, err := protojson.MarshalOptions{UseProtoNames: true}.Marshal(Feed(snap))
	if err != nil {
		return nil, fmt.Errorf("marshal feed json: %w", err)
	}
	return b, nil
}

// Decode parses a binary protobuf feed.
func Decode(b []byte) (*gtfsrtpb.FeedMessage, error) {
	fm := &gtfsrtpb.FeedMessage{}
	if err := proto.Unmarshal(b, fm); err != nil {
		return nil, fmt.Errorf("failed to unmarshal GTFS-RT data: %w", err)
	}
	return fm, nil
}
