package utils

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"runtime/debug"
	"strings"
)

func Fatal(v any) {
	fmt.Fprintf(os.Stderr, "elfld:\n\t\033[0;1;31mfatal\033[0m: %v\n", v)
	if Verbose() {
		debug.PrintStack()
	}
	os.Exit(1)
}

func MustNo(err error) {
	if err != nil {
		Fatal(err.Error())
	}
}

// Read decodes one little-endian record from the front of data. Unlike the
// zero-copy views in pkg/elf it works on any alignment.
func Read[T any](data []byte) (val T) {
	reader := bytes.NewReader(data)
	err := binary.Read(reader, binary.LittleEndian, &val)

	MustNo(err)

	return val
}

// Write encodes val little-endian into the front of data.
func Write[T any](data []byte, val T) {
	buf := &bytes.Buffer{}
	err := binary.Write(buf, binary.LittleEndian, val)
	MustNo(err)
	Assert(buf.Len() <= len(data))
	copy(data, buf.Bytes())
}

func Assert(condition bool) {
	if !condition {
		Fatal("Assert Failed")
	}
}

func RemovePrefix(s, prefix string) (string, bool) {
	if strings.HasPrefix(s, prefix) {
		return s[len(prefix):], true
	}
	return s, false
}
