package dsp

import "fmt"

func errFewChannels(got int) error {
	return fmt.Errorf("dsp: need at least %d voltage channels from AdcSource, got %d", ChannelsOut, got)
}

func errBadScale(channel int, scale float64) error {
	return fmt.Errorf("dsp: scale for channel %d must be a finite positive value, got %v", channel, scale)
}
