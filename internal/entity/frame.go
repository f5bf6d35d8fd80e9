package entity

// FrameKind tells what a transport frame carried. Only FrameText has protocol meaning.
type FrameKind uint8

const (
	FrameText FrameKind = iota + 1
	FrameBinary
	FramePing
	FramePong
	FrameClose
)

// Frame is one inbound message from a client channel.
type Frame struct {
	Kind FrameKind
	Text string
}

func TextFrame(text string) Frame {
	return Frame{Kind: FrameText, Text: text}
}

func (that Frame) IsText() bool {
	return that.Kind == FrameText
}
