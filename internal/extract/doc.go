// Package extract pulls beneficiary records out of source text that embeds
// them as object literals, e.g. a TypeScript data module:
//
//	{ id: "12", fullName: "...", gender: "ذكر", roomNumber: "101" },
//
// It is a boundary-scanning heuristic, not a parser. A fragment runs from an
// opening brace to the first closing brace after it, without depth tracking,
// so a "}" inside a quoted value ends the fragment early. Downstream data
// depends on that behavior; keep it.
package extract
