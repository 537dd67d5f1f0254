package normalize

import (
	"github.com/rohmanhakim/jsxtree/internal/tree"
	"github.com/rohmanhakim/jsxtree/pkg/hashutil"
)

type Format string

const (
	FormatJSON     Format = "json"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// Extension returns the file extension for the format, without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatHTML:
		return "html"
	case FormatMarkdown:
		return "md"
	default:
		return "json"
	}
}

func ParseFormat(name string) (Format, bool) {
	switch Format(name) {
	case FormatJSON, FormatHTML, FormatMarkdown:
		return Format(name), true
	case "md":
		return FormatMarkdown, true
	default:
		return "", false
	}
}

type NormalizedDoc struct {
	frontmatter Frontmatter
	content     []byte
}

// Frontmatter returns the frontmatter of the normalized document.
func (n NormalizedDoc) Frontmatter() Frontmatter {
	return n.frontmatter
}

// Content returns the final document bytes, frontmatter included where the
// format carries one.
func (n NormalizedDoc) Content() []byte {
	return n.content
}

func NewNormalizedDoc(frontmatter Frontmatter, content []byte) NormalizedDoc {
	return NormalizedDoc{
		frontmatter: frontmatter,
		content:     content,
	}
}

type Frontmatter struct {
	title           string
	sourcePath      string
	format          Format
	nodeCount       int
	treeFingerprint string
	contentHash     string
	compilerVersion string
}

// NewFrontmatter creates a new immutable Frontmatter with all fields populated.
func NewFrontmatter(
	title string,
	sourcePath string,
	format Format,
	nodeCount int,
	treeFingerprint string,
	contentHash string,
	compilerVersion string,
) Frontmatter {
	return Frontmatter{
		title:           title,
		sourcePath:      sourcePath,
		format:          format,
		nodeCount:       nodeCount,
		treeFingerprint: treeFingerprint,
		contentHash:     contentHash,
		compilerVersion: compilerVersion,
	}
}

// Title returns the first heading text, or the source file stem.
func (f Frontmatter) Title() string {
	return f.title
}

func (f Frontmatter) SourcePath() string {
	return f.sourcePath
}

func (f Frontmatter) Format() Format {
	return f.format
}

// NodeCount returns the number of output nodes in the compiled tree.
func (f Frontmatter) NodeCount() int {
	return f.nodeCount
}

// TreeFingerprint returns the hash of the compiled tree's JSON encoding.
func (f Frontmatter) TreeFingerprint() string {
	return f.treeFingerprint
}

// ContentHash returns the hash of the rendered content, before frontmatter.
func (f Frontmatter) ContentHash() string {
	return f.contentHash
}

func (f Frontmatter) CompilerVersion() string {
	return f.compilerVersion
}

// Input is one compiled and rendered document.
type Input struct {
	SourcePath string
	Format     Format
	Nodes      []tree.Node
	Content    []byte
}

type NormalizeParam struct {
	appVersion string
	hashAlgo   hashutil.HashAlgo
}

func NewNormalizeParam(
	appVersion string,
	hashAlgo hashutil.HashAlgo,
) NormalizeParam {
	return NormalizeParam{
		appVersion: appVersion,
		hashAlgo:   hashAlgo,
	}
}

type frontmatterYAML struct {
	Title           string `yaml:"title"`
	Source          string `yaml:"source"`
	Format          string `yaml:"format"`
	Nodes           int    `yaml:"nodes"`
	TreeFingerprint string `yaml:"tree_fingerprint"`
	ContentHash     string `yaml:"content_hash"`
	CompilerVersion string `yaml:"compiler_version"`
}
