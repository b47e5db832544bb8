// Package source discovers the files that make up a corpus, honoring
// multi-level ignore rules, include/exclude globs, and size limits.
package source

import (
	"bufio"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	gitignore "github.com/sabhiram/go-gitignore"
)

// File is a discovered source file.
type File struct {
	AbsPath  string
	RelPath  string
	Content  string
	Language string
	Size     int64
	ModTime  time.Time
}

// Options configures a discovery run.
type Options struct {
	Root        string
	Includes    []string
	Excludes    []string
	ForceLarge  bool
}

const maxFileSize = 1 << 20 // 1 MiB
const maxLineCount = 20000

// hardSkipDirs are never descended into, regardless of ignore files.
var hardSkipDirs = map[string]bool{
	".git": true, ".svn": true, ".hg": true,
	"node_modules": true, "vendor": true, "bower_components": true,
	"dist": true, "build": true, "out": true, "target": true,
	".venv": true, "venv": true, "__pycache__": true,
	".idea": true, ".vscode": true, ".DS_Store": true,
	".next": true, ".nuxt": true, ".cache": true,
	".pytest_cache": true, ".mypy_cache": true, ".tox": true,
	"bin": true, "obj": true,
}

// binaryExts are skipped outright — never read as text.
var binaryExts = map[string]bool{
	// images
	"png": true, "jpg": true, "jpeg": true, "gif": true, "bmp": true,
	"ico": true, "webp": true, "svg": true, "tiff": true, "heic": true,
	// audio/video
	"mp3": true, "wav": true, "flac": true, "ogg": true,
	"mp4": true, "mov": true, "avi": true, "mkv": true, "webm": true,
	// archives
	"zip": true, "tar": true, "gz": true, "bz2": true, "xz": true,
	"7z": true, "rar": true, "jar": true, "war": true,
	// compiled artifacts
	"exe": true, "dll": true, "so": true, "dylib": true, "o": true,
	"a": true, "class": true, "pyc": true, "wasm": true,
	// fonts
	"ttf": true, "otf": true, "woff": true, "woff2": true, "eot": true,
	// misc binary docs
	"pdf": true, "psd": true, "ai": true, "sketch": true,
}

// extLanguage maps a final extension (no dot) to a language tag.
var extLanguage = map[string]string{
	"py": "python", "pyi": "python",
	"js": "javascript", "jsx": "javascript", "mjs": "javascript", "cjs": "javascript",
	"ts": "typescript", "tsx": "typescript",
	"go": "go",
	"rs": "rust",
	"rb": "ruby",
	"php": "php",
	"java": "java",
	"kt": "kotlin", "kts": "kotlin",
	"scala": "scala",
	"swift": "swift",
	"cs": "csharp",
	"c": "c", "h": "c",
	"cpp": "cpp", "cc": "cpp", "cxx": "cpp", "hpp": "cpp", "hh": "cpp",
	"md": "markdown", "mdx": "markdown",
	"json": "json",
	"yaml": "yaml", "yml": "yaml",
	"toml": "toml",
	"sh": "shell", "bash": "shell",
	"sql": "sql",
	"html": "html",
	"css": "css",
}

// LanguageForPath derives a language tag from path's final extension.
func LanguageForPath(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	ext = strings.ToLower(ext)
	if lang, ok := extLanguage[ext]; ok {
		return lang
	}
	return "text"
}

// Local is a Source backed by a directory already present on disk.
type Local struct {
	opts   Options
	ignore *ignoreSet
	log    *slog.Logger
}

// NewLocal creates a Local source rooted at opts.Root.
func NewLocal(opts Options, log *slog.Logger) (*Local, error) {
	if log == nil {
		log = slog.Default()
	}
	absRoot, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %q: %w", opts.Root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("stat root %q: %w", opts.Root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %q is not a directory", opts.Root)
	}
	opts.Root = absRoot

	ig, err := buildRootIgnore(absRoot, opts.Excludes)
	if err != nil {
		return nil, err
	}

	return &Local{opts: opts, ignore: ig, log: log}, nil
}

// Discover walks the root and sends discovered files on the returned
// channel. Read/permission/encoding errors on individual files are
// logged and skipped — never fatal.
func (l *Local) Discover() <-chan File {
	out := make(chan File, 64)
	go func() {
		defer close(out)
		_ = filepath.WalkDir(l.opts.Root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				l.log.Warn("walk error", "path", path, "err", err)
				return nil
			}
			if path == l.opts.Root {
				return nil
			}
			rel, relErr := filepath.Rel(l.opts.Root, path)
			if relErr != nil {
				return nil
			}
			rel = filepath.ToSlash(rel)

			if d.IsDir() {
				name := d.Name()
				if hardSkipDirs[name] {
					return filepath.SkipDir
				}
				nested, nerr := loadNestedIgnore(path, rel)
				if nerr != nil {
					l.log.Warn("nested ignore file unreadable", "dir", path, "err", nerr)
				}
				if nested != nil {
					l.ignore.addNested(rel, nested)
				}
				if l.ignore.matches(rel, true) {
					return filepath.SkipDir
				}
				return nil
			}

			if d.Type()&fs.ModeSymlink != 0 {
				return nil
			}

			if l.shouldSkip(rel) {
				return nil
			}

			f, ok := l.readFile(path, rel, d)
			if ok {
				out <- f
			}
			return nil
		})
	}()
	return out
}

func (l *Local) shouldSkip(rel string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(rel), "."))
	if binaryExts[ext] {
		return true
	}
	if l.ignore.matches(rel, false) {
		return true
	}
	if len(l.opts.Includes) > 0 && !matchesAny(l.opts.Includes, rel) {
		return true
	}
	return false
}

func (l *Local) readFile(path, rel string, d fs.DirEntry) (File, bool) {
	info, err := d.Info()
	if err != nil {
		l.log.Warn("stat failed", "path", path, "err", err)
		return File{}, false
	}
	if !l.opts.ForceLarge {
		if info.Size() > maxFileSize {
			return File{}, false
		}
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		l.log.Warn("read failed", "path", path, "err", err)
		return File{}, false
	}
	content := string(raw)
	if !l.opts.ForceLarge {
		if n := strings.Count(content, "\n") + 1; n > maxLineCount {
			return File{}, false
		}
	}
	return File{
		AbsPath:  path,
		RelPath:  rel,
		Content:  content,
		Language: LanguageForPath(rel),
		Size:     info.Size(),
		ModTime:  info.ModTime(),
	}, true
}

func matchesAny(globs []string, rel string) bool {
	for _, g := range globs {
		if ok, _ := filepath.Match(g, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(g, filepath.Base(rel)); ok {
			return true
		}
	}
	return false
}

// ignoreSet composes the root ignore (defaults + excludes + root ignore
// file) with any number of nested, directory-scoped ignore files.
type ignoreSet struct {
	root   *gitignore.GitIgnore
	nested map[string]*gitignore.GitIgnore // dir rel-path -> matcher scoped to that dir
}

func buildRootIgnore(absRoot string, excludes []string) (*ignoreSet, error) {
	lines := append([]string{}, defaultIgnoreLines...)
	lines = append(lines, excludes...)

	rootFile := filepath.Join(absRoot, ".gitignore")
	if data, err := os.ReadFile(rootFile); err == nil {
		lines = append(lines, splitIgnoreLines(string(data))...)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read root ignore file: %w", err)
	}

	return &ignoreSet{
		root:   gitignore.CompileIgnoreLines(lines...),
		nested: make(map[string]*gitignore.GitIgnore),
	}, nil
}

var defaultIgnoreLines = []string{
	".git", ".svn", ".hg", "node_modules", "vendor", "bower_components",
	"dist", "build", "out", "target", ".venv", "venv", "__pycache__",
	".idea", ".vscode", ".next", ".nuxt", ".cache",
	".pytest_cache", ".mypy_cache", ".tox",
}

func loadNestedIgnore(dir, relDir string) (*gitignore.GitIgnore, error) {
	p := filepath.Join(dir, ".gitignore")
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	lines := splitIgnoreLines(string(data))
	if len(lines) == 0 {
		return nil, nil
	}
	return gitignore.CompileIgnoreLines(lines...), nil
}

func splitIgnoreLines(data string) []string {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func (s *ignoreSet) addNested(relDir string, matcher *gitignore.GitIgnore) {
	s.nested[relDir] = matcher
}

// matches reports whether rel (forward-slash, root-relative) is ignored by
// the root ignore set or by any nested ignore file whose directory is an
// ancestor of rel.
func (s *ignoreSet) matches(rel string, isDir bool) bool {
	if s.root.MatchesPath(rel) {
		return true
	}
	for dir, matcher := range s.nested {
		if dir == "" {
			continue
		}
		if rel != dir && !strings.HasPrefix(rel, dir+"/") {
			continue // rel is not under dir
		}
		sub := strings.TrimPrefix(rel, dir+"/")
		if matcher.MatchesPath(sub) {
			return true
		}
	}
	return false
}
