// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package trace

import (
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
)

// ReadTraceFile loads and builds a JSON trace from path.
func ReadTraceFile(path string, bc BlockConstants) (*ExecutionTrace, error) {
	raw, err := ReadTraceBytes(path)
	if err != nil {
		return nil, err
	}
	return FromTraceBytes(raw, bc)
}

// ReadTraceBytes returns the raw JSON content of a trace file. Files ending
// in .gz are decompressed first.
func ReadTraceBytes(path string) ([]byte, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not stat file: %s, does it exist?", path)
	}
	if stat.IsDir() {
		return nil, errors.New("given path to trace file is a directory")
	}
	if stat.Size() == 0 {
		return nil, errors.New("given trace file is empty")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open trace file: %s", path)
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gzipReader, err := gzip.NewReader(file)
		if err != nil {
			return nil, errors.Wrapf(err, "could not create gzip reader for trace file: %s", path)
		}
		defer gzipReader.Close()
		reader = gzipReader
	}
	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read trace file: %s", path)
	}
	return raw, nil
}
