package scenario

// LocalFileSystem keeps test files on the local disk. It is the default.
type LocalFileSystem struct{ Base }

func (*LocalFileSystem) Kind() string             { return "LocalFileSystem" }
func (*LocalFileSystem) Category() Category       { return CategoryFileSystem }
func (*LocalFileSystem) Name() string             { return "Local-FileSystem" }
func (*LocalFileSystem) IsImplemented() bool      { return true }
func (*LocalFileSystem) IsPlaceholder(Layer) bool { return true }

// SMBFileSystem keeps test files on a Windows share. Recognized but not
// implemented.
type SMBFileSystem struct{ Base }

func (*SMBFileSystem) Kind() string              { return "SMBFileSystem" }
func (*SMBFileSystem) Category() Category        { return CategoryFileSystem }
func (*SMBFileSystem) Name() string              { return "SMB" }
func (*SMBFileSystem) IsImplemented() bool       { return false }
func (*SMBFileSystem) IsSupported(env Env) bool  { return env.Host != nil && env.Host.IsWindows() }
func (*SMBFileSystem) UACRequiredForSetup() bool { return true }
