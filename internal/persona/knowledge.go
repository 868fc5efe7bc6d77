package persona

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	snippetLen      = 400
	folderBudget    = 900
	contextCharsMax = 1200
)

// KnowledgeBase assembles prompt context from local note files. Each
// configured folder is scanned for .txt and .md files; snippets are
// capped per file and per folder so the prompt stays small.
type KnowledgeBase struct {
	root    string
	folders []string
}

// NewKnowledgeBase scans the default lesson-note folders under root.
func NewKnowledgeBase(root string) *KnowledgeBase {
	return &KnowledgeBase{
		root:    root,
		folders: []string{"arabic_agent", "learn_animal", "learn_plants", "learn_reading"},
	}
}

// BuildContext concatenates the available snippets. Returns "" when no
// notes exist; missing folders are not an error.
func (kb *KnowledgeBase) BuildContext() string {
	var parts []string
	for _, folder := range kb.folders {
		if s := kb.folderSnippets(folder); s != "" {
			parts = append(parts, s)
		}
	}
	out := strings.TrimSpace(strings.Join(parts, "\n\n"))
	if len(out) > contextCharsMax {
		out = out[:contextCharsMax]
	}
	return out
}

func (kb *KnowledgeBase) folderSnippets(folder string) string {
	dir := filepath.Join(kb.root, folder)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return ""
	}

	var files []string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".txt", ".md":
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)

	var parts []string
	total := 0
	for _, f := range files {
		raw, err := os.ReadFile(f)
		if err != nil {
			continue
		}
		txt := strings.TrimSpace(string(raw))
		if txt == "" {
			continue
		}
		if len(txt) > snippetLen {
			txt = txt[:snippetLen]
		}
		part := fmt.Sprintf("[%s/%s]\n%s", folder, filepath.Base(f), txt)
		parts = append(parts, part)
		total += len(part)
		if total >= folderBudget {
			break
		}
	}

	out := strings.Join(parts, "\n\n")
	if len(out) > folderBudget {
		out = out[:folderBudget]
	}
	return out
}
