package scenario

// ElggArchive is the application bundle the Elgg capability installs.
const ElggArchive = "elgg-1.8.11.zip"

// Elgg installs the Elgg social networking application for application
// layer runs. Recognized but not implemented.
type Elgg struct{ Base }

func (*Elgg) Kind() string        { return "Elgg" }
func (*Elgg) Category() Category  { return CategoryApplication }
func (*Elgg) Name() string        { return "Elgg" }
func (*Elgg) IsImplemented() bool { return false }

// Archive is the file name of the application bundle.
func (*Elgg) Archive() string { return ElggArchive }
