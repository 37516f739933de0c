package languages

// Family groups languages by the detector that handles them.
type Family string

const (
	// FamilyLibrary languages are compared in-process.
	FamilyLibrary Family = "library"
	// FamilyTool languages are compared by an external command over sandbox files.
	FamilyTool Family = "tool"
)

const (
	Python = "python"
	CPP    = "cpp"
	Java   = "java"
)

// Language describes one accepted language id
type Language struct {
	ID        string // canonical id used in requests (e.g., "cpp")
	Linguist  string // go-enry/linguist name (e.g., "C++")
	Extension string // extension used for sandbox files
	Family    Family
}

func defaultLanguages() []Language {
	return []Language{
		{ID: Python, Linguist: "Python", Extension: ".py", Family: FamilyLibrary},
		{ID: CPP, Linguist: "C++", Extension: ".cpp", Family: FamilyTool},
		{ID: Java, Linguist: "Java", Extension: ".java", Family: FamilyTool},
	}
}
