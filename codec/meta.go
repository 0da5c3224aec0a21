package codec

import "time"

// Meta is the timing and origin of a packet. It implements the accessor part
// of vivid.Packet.
type Meta struct {
	Index  uint8
	PTS    time.Duration // relative to the start of the stream
	Dur    time.Duration
	Source string
	Wall   time.Time // wall clock time of PTS
}

func (m *Meta) URL() string            { return m.Source }
func (m *Meta) SetURL(url string)      { m.Source = url }
func (m *Meta) StreamIndex() uint8     { return m.Index }
func (m *Meta) SetStreamIndex(i uint8) { m.Index = i }

func (m *Meta) Timestamp() time.Duration      { return m.PTS }
func (m *Meta) SetTimestamp(ts time.Duration) { m.PTS = ts }
func (m *Meta) Duration() time.Duration       { return m.Dur }
func (m *Meta) SetDuration(d time.Duration)   { m.Dur = d }
func (m *Meta) StartTime() time.Time          { return m.Wall }
func (m *Meta) SetStartTime(t time.Time)      { m.Wall = t }
