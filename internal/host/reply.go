package host

// ReplyKind enumerates the host's native reply types.
type ReplyKind int

const (
	// ReplyNil is the null bulk reply.
	ReplyNil ReplyKind = iota
	// ReplySimple is a simple status string ("+OK").
	ReplySimple
	// ReplyBulk is a binary-safe bulk string.
	ReplyBulk
	// ReplyInteger is a signed integer reply.
	ReplyInteger
	// ReplyArray is an array of replies.
	ReplyArray
)

// Reply is the host's native command result. Exactly one of the payload
// fields is meaningful, selected by Kind.
type Reply struct {
	Kind  ReplyKind
	Str   string
	Int   int64
	Elems []Reply
}

// Nil returns the null reply.
func Nil() Reply {
	return Reply{Kind: ReplyNil}
}

// SimpleString returns a simple status reply.
func SimpleString(s string) Reply {
	return Reply{Kind: ReplySimple, Str: s}
}

// Bulk returns a bulk string reply.
func Bulk(s string) Reply {
	return Reply{Kind: ReplyBulk, Str: s}
}

// Integer returns an integer reply.
func Integer(n int64) Reply {
	return Reply{Kind: ReplyInteger, Int: n}
}

// Array returns an array reply over the given elements.
func Array(elems []Reply) Reply {
	return Reply{Kind: ReplyArray, Elems: elems}
}

// IsNil reports whether the reply is the null reply.
func (r Reply) IsNil() bool {
	return r.Kind == ReplyNil
}
