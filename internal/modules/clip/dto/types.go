package dto

type ClipOutput struct {
	Title     string
	SourceURL string
}

type PickInput struct {
	// Seen lists the source URLs already shown this run.
	Seen []string
}

type ResolveOutput struct {
	SourceURL string
	VideoID   string
	EmbedURL  string
	Playable  bool
}
