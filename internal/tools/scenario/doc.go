// Package scenario loads tournament definitions written as Lua scripts.
//
// A script builds a Tournament through chained method calls and returns it:
//
//	local t = Tournament.new("classic")
//	t:entrants("NICE", 3):entrants("TIT_FOR_TAT", 2)
//	t:random(4):threshold(-10):max_rounds(100):seed(42)
//	return t
//
// Settings a script leaves out stay unset so the caller's defaults apply.
package scenario
