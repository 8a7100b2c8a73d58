package audioinfo

import (
	"encoding/json"
	"fmt"

	"github.com/jfreymuth/pulse"
	"github.com/jfreymuth/pulse/proto"
)

// AudioDevice is the state of the default output as the volume keys see it.
type AudioDevice struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
	Muted bool   `json:"muted"`
}

// levelPercent averages the channel volumes and clamps the result to
// 0-100. A sink that reports no channels counts as full volume.
func levelPercent(cv proto.ChannelVolumes) int {
	if len(cv) == 0 {
		return 100
	}
	var total uint64
	for _, v := range cv {
		total += uint64(v)
	}
	avg := float64(total) / float64(len(cv))
	pct := int(avg*100/float64(proto.VolumeNorm) + 0.5)
	return min(max(pct, 0), 100)
}

func sinkState(c *pulse.Client) (AudioDevice, error) {
	sink, err := c.DefaultSink()
	if err != nil {
		return AudioDevice{}, fmt.Errorf("default sink: %w", err)
	}

	var reply proto.GetSinkInfoReply
	if err := c.RawRequest(&proto.GetSinkInfo{SinkIndex: proto.Undefined, SinkName: sink.ID()}, &reply); err != nil {
		return AudioDevice{}, fmt.Errorf("sink info %s: %w", sink.ID(), err)
	}
	return AudioDevice{
		Name:  sink.Name(),
		Level: levelPercent(reply.ChannelVolumes),
		Muted: reply.Mute,
	}, nil
}

// GetOutput reads the default sink over the pulse native protocol.
func GetOutput() (AudioDevice, error) {
	c, err := pulse.NewClient(pulse.ClientApplicationName("hkcheck"))
	if err != nil {
		return AudioDevice{}, fmt.Errorf("pulse client: %w", err)
	}
	defer c.Close()

	return sinkState(c)
}

func GetOutputJSON() ([]byte, error) {
	dev, err := GetOutput()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(dev, "", "  ")
}
