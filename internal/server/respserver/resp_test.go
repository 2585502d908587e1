package respserver

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/modware/sesskv/internal/host"
)

func reader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestReadCommand_Array(t *testing.T) {
	args, err := ReadCommand(reader("*3\r\n$3\r\nSET\r\n$1\r\nk\r\n$1\r\nv\r\n"))
	if err != nil {
		t.Fatalf("ReadCommand() error = %v", err)
	}
	if len(args) != 3 || string(args[0]) != "SET" || string(args[1]) != "k" || string(args[2]) != "v" {
		t.Errorf("args = %q", args)
	}
}

func TestReadCommand_EmptyBulk(t *testing.T) {
	args, err := ReadCommand(reader("*2\r\n$3\r\nGET\r\n$0\r\n\r\n"))
	if err != nil {
		t.Fatalf("ReadCommand() error = %v", err)
	}
	if len(args) != 2 || string(args[1]) != "" {
		t.Errorf("args = %q", args)
	}
}

func TestReadCommand_Inline(t *testing.T) {
	args, err := ReadCommand(reader("PING extra\r\n"))
	if err != nil {
		t.Fatalf("ReadCommand() error = %v", err)
	}
	if len(args) != 2 || string(args[0]) != "PING" || string(args[1]) != "extra" {
		t.Errorf("args = %q", args)
	}
}

func TestReadCommand_ProtocolErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bad array length", "*x\r\n"},
		{"not a bulk element", "*1\r\n:5\r\n"},
		{"bad bulk length", "*1\r\n$x\r\n"},
		{"bad bulk terminator", "*1\r\n$2\r\nabXY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadCommand(reader(tt.input)); !errors.Is(err, ErrProtocol) {
				t.Errorf("error = %v, want ErrProtocol", err)
			}
		})
	}
}

func TestReadCommand_Limits(t *testing.T) {
	if _, err := ReadCommand(reader("*9999999\r\n")); !errors.Is(err, ErrLimitExceeded) {
		t.Errorf("oversized array error = %v, want ErrLimitExceeded", err)
	}
	if _, err := ReadCommand(reader("*1\r\n$9999999\r\n")); !errors.Is(err, ErrLimitExceeded) {
		t.Errorf("oversized bulk error = %v, want ErrLimitExceeded", err)
	}
	if _, err := ReadCommand(reader(strings.Repeat("A", MaxInlineLen+10) + "\r\n")); !errors.Is(err, ErrLimitExceeded) {
		t.Errorf("oversized inline error = %v, want ErrLimitExceeded", err)
	}
}

func TestWriteReply_Encodings(t *testing.T) {
	tests := []struct {
		name  string
		reply host.Reply
		want  string
	}{
		{"simple", host.SimpleString("OK"), "+OK\r\n"},
		{"bulk", host.Bulk("hello"), "$5\r\nhello\r\n"},
		{"integer", host.Integer(42), ":42\r\n"},
		{"nil", host.Nil(), "$-1\r\n"},
		{"empty array", host.Array(nil), "*0\r\n"},
		{
			"nested array",
			host.Array([]host.Reply{host.Bulk("a"), host.Integer(1)}),
			"*2\r\n$1\r\na\r\n:1\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := bufio.NewWriter(&buf)
			if err := writeReply(w, tt.reply); err != nil {
				t.Fatalf("writeReply() error = %v", err)
			}
			w.Flush()
			if buf.String() != tt.want {
				t.Errorf("encoded = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestNormalizeCommandName(t *testing.T) {
	if got := normalizeCommandName([]byte("custom.set")); got != "CUSTOM.SET" {
		t.Errorf("normalizeCommandName = %q", got)
	}
	if got := normalizeCommandName([]byte("PING")); got != "PING" {
		t.Errorf("normalizeCommandName = %q", got)
	}
}

func TestIPLimiter(t *testing.T) {
	l := newIPLimiter(2)

	if !l.allow("10.0.0.1") || !l.allow("10.0.0.1") {
		t.Fatal("burst allowance should cover the first two commands")
	}
	if l.allow("10.0.0.1") {
		t.Error("third immediate command should be limited")
	}
	// A different client has its own bucket.
	if !l.allow("10.0.0.2") {
		t.Error("second client should not share the first client's bucket")
	}
}
