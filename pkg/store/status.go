package store

import "maps"

// Status is the Idle -> Pending -> Success|Failure record of one async operation.
type Status struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
	Success bool   `json:"success"`
}

func (s Status) Start() Status {
	return Status{Loading: true}
}

func (s Status) Succeed() Status {
	return Status{Success: true}
}

func (s Status) Fail(msg string) Status {
	return Status{Error: msg}
}

// Flags is a copy-on-write set of per-item loading keys,
// e.g. "42" for a question or "5-9" for a question/reviewer pair.
type Flags map[string]bool

func (f Flags) Set(key string) Flags {
	next := maps.Clone(f)
	if next == nil {
		next = Flags{}
	}
	next[key] = true
	return next
}

func (f Flags) Clear(key string) Flags {
	if !f[key] {
		return f
	}
	next := maps.Clone(f)
	delete(next, key)
	return next
}

func (f Flags) Has(key string) bool {
	return f[key]
}
