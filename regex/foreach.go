package regex

import (
	"bytes"
	"fmt"
	"iter"
)

// ForEachName calls fn for every (name, groups) pair in table order until
// fn returns false. It returns ErrClosed after Close and a decode error if
// the table is malformed; pairs already delivered before a fault stay
// delivered.
func (re *Regex) ForEachName(fn func(Entry) bool) error {
	it := re.Names()
	for it.Next() {
		if !fn(it.Entry()) {
			return nil
		}
	}
	return it.Err()
}

// All returns a range-over-func view of the name table. A decode fault is
// yielded once as the final element with a zero Entry.
//
//	for e, err := range re.All() {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(e.Name())
//	}
func (re *Regex) All() iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		it := re.Names()
		for it.Next() {
			if !yield(it.Entry(), nil) {
				return
			}
		}
		if err := it.Err(); err != nil {
			yield(Entry{}, err)
		}
	}
}

// GroupNumbers returns the groups carrying name, in pattern order. The name
// is given in UTF-8 and compared after conversion to the pattern's encoding.
func (re *Regex) GroupNumbers(name string) ([]int, error) {
	want, err := re.Encoding().Encode(name)
	if err != nil {
		return nil, &Error{Kind: ErrKindNotFound, Msg: ErrNotFound.Msg, Err: err}
	}
	var out []int
	err = re.ForEachName(func(e Entry) bool {
		if bytes.Equal(e.NameBytes(), want) {
			out = e.Groups().Ints()
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, &Error{Kind: ErrKindNotFound, Msg: ErrNotFound.Msg, Err: fmt.Errorf("%q", name)}
	}
	return out, nil
}
