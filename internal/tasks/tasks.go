// Package tasks installs desmoke task entries into VS Code's tasks.json,
// preserving whatever the user already has in the file.
package tasks

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const emptyDoc = `{"version":"2.0.0","cwd":"${workspaceFolder}"}`

// Task entries shelled out to by the editor. The problem-matcher regexes
// match the "[desmoke] file:line[:col]: ..." lines this tool emits.
const jstestTask = `{
	"label": "Run file as jstest",
	"type": "shell",
	"command": "bash",
	"args": [
		"-c",
		"source python3-venv/bin/activate && ./buildscripts/resmoke.py run ${relativeFile} | desmoke --filetype resmoke"
	],
	"group": {"kind": "test", "isDefault": true},
	"presentation": {"focus": true, "clear": true},
	"problemMatcher": {
		"owner": "js",
		"fileLocation": ["relative", "${workspaceFolder}"],
		"pattern": {
			"regexp": "^\\[desmoke\\]\\s+(.*):(\\d+):(\\d+):\\s+(warning|error):\\s+(.*)$",
			"file": 1,
			"line": 2,
			"column": 3,
			"severity": 4,
			"message": 5
		}
	}
}`

const cppunitTask = `{
	"label": "Run file as C++ unit test",
	"type": "shell",
	"command": "bash",
	"args": [
		"-c",
		"source python3-venv/bin/activate && ninja -j400 +${fileBasenameNoExtension} | desmoke --filetype cppunit"
	],
	"group": "test",
	"presentation": {"focus": true, "clear": true},
	"problemMatcher": {
		"owner": "cpp",
		"fileLocation": ["relative", "${workspaceFolder}"],
		"pattern": {
			"regexp": "^\\[desmoke\\]\\s+(.*):(\\d+):\\s+(.*)$",
			"file": 1,
			"line": 2,
			"message": 3
		}
	}
}`

// Install appends the desmoke task entries to the tasks file at path.
// When the file does not exist yet, the user is asked on in/out whether to
// create it; declining is not an error.
func Install(path string, in io.Reader, out io.Writer) error {
	if path == "" {
		path = filepath.Join(".vscode", "tasks.json")
	}

	doc, err := os.ReadFile(path)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		ok, promptErr := confirmCreate(path, in, out)
		if promptErr != nil {
			return promptErr
		}
		if !ok {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}
		doc = []byte(emptyDoc)
	default:
		return fmt.Errorf("tasks: read %s: %w", path, err)
	}

	merged, err := appendTasks(doc)
	if err != nil {
		return fmt.Errorf("tasks: %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("tasks: %w", err)
	}
	if err := os.WriteFile(path, merged, 0644); err != nil {
		return fmt.Errorf("tasks: write %s: %w", path, err)
	}
	return nil
}

// appendTasks adds both task entries to the document's tasks array,
// creating the array when absent. Existing content is left as-is.
func appendTasks(doc []byte) ([]byte, error) {
	if !gjson.ValidBytes(doc) {
		return nil, fmt.Errorf("not valid JSON")
	}
	if !gjson.GetBytes(doc, "tasks").Exists() {
		var err error
		doc, err = sjson.SetRawBytes(doc, "tasks", []byte("[]"))
		if err != nil {
			return nil, err
		}
	}

	for _, task := range []string{jstestTask, cppunitTask} {
		var err error
		doc, err = sjson.SetRawBytes(doc, "tasks.-1", []byte(task))
		if err != nil {
			return nil, err
		}
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, doc, "", "    "); err != nil {
		return nil, err
	}
	return pretty.Bytes(), nil
}

func confirmCreate(path string, in io.Reader, out io.Writer) (bool, error) {
	fmt.Fprintf(out, "%s does not yet exist. Create it? (y/N) ", path)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("tasks: read answer: %w", err)
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y"), nil
}
