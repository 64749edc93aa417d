// Package regex compiles Onigmo-style patterns and exposes their named
// groups.
//
// Every compiled pattern that uses named groups owns a name table: a hash
// table mapping each distinct group name to the groups that carry it. The
// table lives in memory the pattern owns, outside the Go heap on platforms
// that support anonymous mappings, and is sealed read-only once built.
// Names and Names-based helpers walk it in place without copying:
//
//	re, err := regex.Compile(`(?<foo>a*)(?<bar>b*)(?<bar>c*)`)
//	if err != nil {
//	    return err
//	}
//	defer re.Close()
//
//	it := re.Names()
//	for it.Next() {
//	    e := it.Entry()
//	    fmt.Println(e.Name(), e.Groups().Ints()) // foo [1], then bar [2 3]
//	}
//	if err := it.Err(); err != nil {
//	    return err
//	}
//
// Iteration order follows the table's bucket layout. It is stable for a
// given pattern and options but is not the order names appear in the
// pattern.
//
// # Validity
//
// Entries borrow from the pattern. After Close, iterators and table views
// fail with ErrClosed instead of reading released memory.
//
// # Errors
//
// All errors are *Error values carrying an ErrKind. Use errors.Is with the
// ErrClosed, ErrDecode and ErrNotFound sentinels, or errors.As to inspect the
// kind; the underlying cause is available through Unwrap.
package regex
