package domain

// FileIndexSource is the reserved source label for the synthetic chunk set
// that lists every indexed file. Queries about available documents resolve
// against it like against any other chunk.
const FileIndexSource = "indexing files"

// Chunk is a bounded piece of a source document, the unit stored and
// retrieved. Index is the zero-based position of the chunk within its source.
type Chunk struct {
	Source string
	Index  int
	Text   string
}

// SearchResult pairs a retrieved chunk with its similarity score.
type SearchResult struct {
	Chunk
	Score float64
}

// Conversation roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn of the conversation history.
type Message struct {
	Role    string
	Content string
}

// Chunker splits raw text into overlapping chunks tagged with their source.
type Chunker interface {
	Split(text, source string) []Chunk
	FileIndex(files []string) []Chunk
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}
