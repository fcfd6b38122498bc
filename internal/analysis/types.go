package analysis

// Finding is a single detected quality problem. Line 0 is reserved for
// file-level findings such as a parse failure.
type Finding struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// AnalysisResult is the outcome of one analysis request.
type AnalysisResult struct {
	FileName         string    `json:"fileName"`
	OriginalSource   string    `json:"originalSource"`
	OriginalScore    int       `json:"originalScore"`
	Issues           []Finding `json:"issues"`
	AISuggestions    []string  `json:"aiSuggestions"`
	RefactoredSource *string   `json:"refactoredSource"`
	RefactoredScore  int       `json:"refactoredScore"`
}

// Finding messages. Scoring classifies findings by the phrases they contain.
const (
	MsgConsoleOutput = "Use of System.out.println — prefer a logging framework (SLF4J/Logback)."
	MsgTodo          = "Found TODO/FIXME comment — address before production."
	MsgCredential    = "Possible hard-coded credential pattern — move secrets to config/secrets manager."
	MsgBroadCatch    = "Broad catch of Exception — catch specific exceptions and avoid swallowing errors."
	MsgSQLConcat     = "Possible SQL string concatenation — use PreparedStatement to prevent SQL injection."
	MsgUnparseable   = "Unable to parse Java file. Provide a valid .java file."
)
