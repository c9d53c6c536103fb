package dto

import (
	"time"

	statsdto "cigbreak/internal/modules/stats/dto"
)

type BreakOutput struct {
	BreakID       string
	State         string
	Active        bool
	PromptVisible bool
	Generation    uint64
	ClipTitle     string
	SourceURL     string
	VideoID       string
	EmbedURL      string
	Playable      bool
	SegmentDue    time.Time
	Stats         statsdto.StatsOutput
}

type BreakEvent struct {
	Kind  string
	Break BreakOutput
}
