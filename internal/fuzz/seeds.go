package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10

var builtinSeeds = []string{
	"",
	"start: $1\n",
	"scene $1 {\n    setup:\n        say \"Hello, World!\"\n    action:\n    cleanup:\n}\nstart: $1\n",
	"scene $1 {\n  setup:\n    if a:\n      say 1\n    else:\n      say 2",
	"scene $1 {\n\tsetup:\n\t\tsay 1\n\n\t\t% comment\n\taction:\n\tcleanup:\n}\n",
	"item key(a, b) {\n    x is a\n    while x:\n        continue\n}\n",
	"scene $1 {\n    setup:\n        say \"text\" - 3\n    action:\n    cleanup:\n}\n",
	"scene $1 {\n    setup:\n        pocket.add(\"key\")\n    action:\n    cleanup:\n}\nstart: $1\n",
	"scene $1 {\n    setup:\n        say \"unterminated\n",
	"scene $1 {\n        setup:\n    action:\n}\n",
	"say ((((((1))))))\n",
}

// addCorpusSeeds adds the built-in seeds and every .ntr file under testdata.
func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".ntr" {
			return nil
		}
		// #nosec G304 -- path comes from the repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clamp(src, maxSeedBytes))
		return nil
	})
}

func clamp(input []byte, limit int) []byte {
	if len(input) > limit {
		input = input[:limit]
	}
	return append([]byte(nil), input...)
}
