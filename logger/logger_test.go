// @license
// Copyright (C) 2025  Tynobi Company
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := Output(&buf)
	logger.Print("test")
	if !strings.Contains(buf.String(), "test") {
		t.Errorf("Output() did not write to the buffer")
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	Logger = Logger.Output(&buf)
	Print("test")
	if !strings.Contains(buf.String(), "test") {
		t.Errorf("Print() did not write to the buffer")
	}
}

func TestPrintf(t *testing.T) {
	var buf bytes.Buffer
	Logger = Logger.Output(&buf)
	Printf("test %s", "string")
	if !strings.Contains(buf.String(), "test string") {
		t.Errorf("Printf() did not write to the buffer")
	}
}

func TestDebug(t *testing.T) {
	var buf bytes.Buffer
	Logger = Logger.Output(&buf)
	Debug().Msg("debug message")
	if !strings.Contains(buf.String(), "debug message") {
		t.Errorf("Debug() did not write to the buffer")
	}
}
