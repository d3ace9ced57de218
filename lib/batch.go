package lib

import (
	"bufio"
	"io/ioutil"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
)

// BatchEntry is one equation read from a batch file together with its
// outcome. Err is set instead of Solution when interpretation failed.
type BatchEntry struct {
	Line     int
	Equation string
	Solution Solution
	Err      error
}

type EquationBatch struct {
	Name     string
	Path     string
	Variable rune
	Entries  []BatchEntry
}

// ReadBatchesFromDir interprets every *.eq file in dir, in file name order.
func ReadBatchesFromDir(dir string, in *Interpreter) ([]EquationBatch, error) {
	files, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	batches := []EquationBatch{}

	for _, file := range files {
		if file.IsDir() || path.Ext(file.Name()) != ".eq" {
			continue
		}
		filePath := path.Join(dir, file.Name())
		b, err := ReadBatchFromFile(filePath, in)
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}

	return batches, nil
}

// ReadBatchFromFile interprets each line of a file as an equation. Blank
// lines and lines starting with '#' are skipped. Equations that fail are
// recorded on their entry; only I/O errors are returned.
func ReadBatchFromFile(filePath string, in *Interpreter) (EquationBatch, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return EquationBatch{}, err
	}
	defer f.Close()

	batch := EquationBatch{
		Name:     batchNameFromPath(filePath),
		Path:     filePath,
		Variable: in.Variable(),
		Entries:  []BatchEntry{},
	}

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		solution, err := in.Interpret(line)
		batch.Entries = append(batch.Entries, BatchEntry{
			Line:     lineNo,
			Equation: line,
			Solution: solution,
			Err:      err,
		})
	}
	if err := scanner.Err(); err != nil {
		return EquationBatch{}, errors.Wrapf(err, "reading %s", filePath)
	}

	return batch, nil
}

func batchNameFromPath(filePath string) string {
	_, fileName := path.Split(filePath)
	parts := strings.Split(fileName, ".")
	return parts[0]
}
