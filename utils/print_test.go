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

package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPrinter_NewPrinter(t *testing.T) {
	p := NewPrinters()
	assert.NotNil(t, p)
}

func TestPrinter_AddPrinter(t *testing.T) {
	p := &Printers{[]Printer{}}
	p1 := &PrinterToWriter{}
	p2 := &PrinterToWriter{}

	p.AddPrinter(p1)
	p.AddPrinter(p2)

	assert.Equal(t, 2, len(p.printers))
}

func TestPrinter_Print(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockPrinter := NewMockPrinter(ctrl)
	p := &Printers{[]Printer{
		mockPrinter,
	}}
	mockPrinter.EXPECT().Print().Return(nil).Times(1)
	assert.NoError(t, p.Print())
}

func TestPrinter_PrintStopsAtFirstError(t *testing.T) {
	ctrl := gomock.NewController(t)

	first := NewMockPrinter(ctrl)
	second := NewMockPrinter(ctrl)
	p := NewPrinters().AddPrinter(first).AddPrinter(second)

	mockErr := errors.New("mock error")
	first.EXPECT().Print().Return(mockErr)
	assert.ErrorIs(t, p.Print(), mockErr)
}

func TestPrinter_Close(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockPrinter := NewMockPrinter(ctrl)
	p := &Printers{[]Printer{
		mockPrinter,
	}}
	mockPrinter.EXPECT().Close().Return().Times(1)
	assert.NotPanics(t, p.Close)
}

func TestPrinters_AddPrinterToWriter(t *testing.T) {
	p := &Printers{}
	p.AddPrinterToWriter(os.Stdout, func() string {
		return "Hello, World!"
	})
	assert.Equal(t, 1, len(p.printers))
}

func TestPrinters_AddPrinterToConsole(t *testing.T) {
	p := &Printers{}
	p.AddPrinterToConsole(false, func() string {
		return "Hello, World!"
	})
	assert.Equal(t, 1, len(p.printers))

	p = &Printers{}
	p.AddPrinterToConsole(true, func() string {
		return "Hello, World!"
	})
	assert.Equal(t, 0, len(p.printers))
}

func TestPrinters_AddPrinterToFile(t *testing.T) {
	p := &Printers{}
	p.AddPrinterToFile("test.txt", func() string {
		return "Hello, World!"
	})
	assert.Equal(t, 1, len(p.printers))

	p = &Printers{}
	p.AddPrinterToFile("", func() string {
		return "Hello, World!"
	})
	assert.Equal(t, 0, len(p.printers))
}

func TestPrinterToWriter_Print(t *testing.T) {
	var buf bytes.Buffer
	p := &PrinterToWriter{
		w: &buf,
		f: func() string {
			return "Hello, World!"
		},
	}
	require.NoError(t, p.Print())
	assert.Equal(t, "Hello, World!\n", buf.String())
}

func TestPrinterToWriter_Close(t *testing.T) {
	p := &PrinterToWriter{}
	assert.NotPanics(t, p.Close)
}

func TestPrinterToWriter_NewPrinterToConsole(t *testing.T) {
	p := NewPrinterToConsole(func() string {
		return "Hello, World!"
	})
	assert.NotNil(t, p)
	assert.Equal(t, reflect.ValueOf(os.Stdout).Pointer(), reflect.ValueOf(p.w).Pointer())
	assert.NotNil(t, p.f)
}

func TestPrinterToFile_Print(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "test.txt")
	p := NewPrinterToFile(filePath, func() string {
		return "Hello, World!"
	})
	require.NoError(t, p.Print())
	// printing again replaces the content
	require.NoError(t, p.Print())

	content, err := os.ReadFile(filePath)
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", string(content))
}

func TestPrinterToFile_PrintToMissingDirectory(t *testing.T) {
	p := NewPrinterToFile(filepath.Join(t.TempDir(), "missing", "test.txt"), func() string {
		return ""
	})
	err := p.Print()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to print to file")
}

func TestPrinterToFile_Close(t *testing.T) {
	p := NewPrinterToFile(filepath.Join(t.TempDir(), "test.txt"), nil)
	assert.NotPanics(t, p.Close)
}

func TestPrinters_CloseClosesEveryPrinter(t *testing.T) {
	ctrl := gomock.NewController(t)

	first := NewMockPrinter(ctrl)
	second := NewMockPrinter(ctrl)
	var p Printer = first
	assert.NotNil(t, p)

	gomock.InOrder(
		first.EXPECT().Close(),
		second.EXPECT().Close(),
	)
	NewPrinters().AddPrinter(first).AddPrinter(second).Close()
}
