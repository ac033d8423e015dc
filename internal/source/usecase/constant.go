package usecase

const (
	LogPrefixRetrieve = "internal.source.usecase.Retrieve"
	LogPrefixFetch    = "internal.source.usecase.fetch"

	maxPageBytes = 2 << 20
)

// Fetch outcomes reported to metrics.
const (
	outcomeOK          = "ok"
	outcomeEmpty       = "empty"
	outcomeFailed      = "failed"
	outcomeSubstituted = "substituted"
	outcomeExhausted   = "exhausted"
)

// Paths with these extensions are not HTML documents.
var documentExtensions = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".ppt": true, ".pptx": true,
	".xls": true, ".xlsx": true, ".zip": true, ".csv": true,
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".mp3": true, ".mp4": true,
}
