package models

import "time"

const (
	// ScriptPartCount is the canonical number of narrative parts.
	ScriptPartCount = 5
	// ScriptPartMinChars is a soft quality gate on part content, logged
	// when violated, never enforced as a hard contract.
	ScriptPartMinChars = 200
)

// ScriptBeats is the canonical narrative beat sequence, in order.
var ScriptBeats = [ScriptPartCount]string{
	"Introduction",
	"Development",
	"Conflict",
	"Climax",
	"Resolution",
}

type ScriptPart struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Script is the output of the script stage.
type Script struct {
	Prompt    string       `json:"prompt"`
	StyleInfo *StyleInfo   `json:"styleInfo,omitempty"`
	Parts     []ScriptPart `json:"parts"`
	CreatedAt time.Time    `json:"createdAt"`
}

func (*Script) StageField() string { return string(StageScript) }
