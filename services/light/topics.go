package light

import "taillight-go/bus"

var (
	TopicMode  = bus.Topic{"light", "mode"}
	TopicFrame = bus.Topic{"light", "frame"}
	TopicPower = bus.Topic{"light", "power"}
	TopicPress = bus.Topic{"light", "event", "press"}
)
