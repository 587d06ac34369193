// Package assemble builds a minified HTML document from an ordered stream of
// instructions.
//
// # Trust Channels
//
// Content enters the document through one of three doors, all of which share
// a single write core:
//
//	Token         - a fixed structural literal (one tag); validated against
//	                the open-element stack
//	WriteTrusted  - bytes asserted to be well-formed for their position
//	                (embedded assets, renderer output); never escaped
//	WriteUntrusted - user-supplied text; escaped for exactly one Context
//	                (text, style or script) before it is written
//
// # Raw-Text Mode
//
// While the innermost open element is <script>, <style>, <pre> or <code>,
// everything is copied byte-for-byte. Outside raw-text mode, comments are
// dropped and whitespace runs collapse: to nothing at block boundaries and to
// a single space inside inline runs.
//
// # Errors
//
// A close that does not match the innermost open element, or an escape
// context that does not match it, fails with ErrStructural. Extracting the
// buffer while elements remain open fails with ErrUnterminatedDocument. The
// first error is sticky: every later call returns it.
package assemble
