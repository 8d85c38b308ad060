// Package lua runs Lua scripts against a page.
//
// Scripts run in a sandboxed gopher-lua state that only opens the base,
// table, string and math libraries and has no way to load code from disk.
// The fl module exposes the page's document and frozen rows:
//
//	fl.freeze(0, 2)
//	local ok, err = pcall(fl.insert, 1, 0, "x")  -- err mentions "frozen"
//	fl.insert(5, 0, "hello\n")
//	for _, r in ipairs(fl.frozen()) do print(r[1], r[2]) end
//
// Rows and columns are zero-based, as in the document engine.
package lua
