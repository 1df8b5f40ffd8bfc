// Package xtimber is a leveled log fan-out facade: application code logs
// through the package-level functions, and every planted Tree decides for
// itself whether to accept and emit the entry.
//
// Usage:
//
//	xtimber.Plant(xtimber.NewConsoleTree())
//	xtimber.Tag("Billing").WarnMsg("invoice retry")
//	xtimber.Debug(func() string { return expensiveDump(state) })
package xtimber

// Facade helpers using the process-wide default Forest.

var std = NewForest()

// Default returns the process-wide Forest behind the package-level
// functions. Tests can reset it with UprootAll between cases.
func Default() *Forest { return std }

// Plant registers a tree with the default forest.
func Plant(t Tree) { std.Plant(t) }

// PlantAll registers several trees at once; all-or-nothing.
func PlantAll(trees ...Tree) { std.PlantAll(trees...) }

// Uproot removes a previously planted tree.
func Uproot(t Tree) { std.Uproot(t) }

// UprootAll removes every planted tree.
func UprootAll() { std.UprootAll() }

// Trees returns a point-in-time copy of the planted trees.
func Trees() []Tree { return std.Trees() }

// Count reports how many trees are planted.
func Count() int { return std.Count() }

// Tag sets a one-shot tag consumed by the next log call on this
// goroutine.
func Tag(tag string) *Forest { return std.Tag(tag) }

func Debug(produce MessageFunc) { std.Debug(produce) }
func Warn(produce MessageFunc)  { std.Warn(produce) }
func Error(produce MessageFunc) { std.Error(produce) }
func Fatal(produce MessageFunc) { std.Fatal(produce) }

func DebugErr(err error, produce MessageFunc) { std.DebugErr(err, produce) }
func WarnErr(err error, produce MessageFunc)  { std.WarnErr(err, produce) }
func ErrorErr(err error, produce MessageFunc) { std.ErrorErr(err, produce) }
func FatalErr(err error, produce MessageFunc) { std.FatalErr(err, produce) }

func DebugMsg(msg string) { std.DebugMsg(msg) }
func WarnMsg(msg string)  { std.WarnMsg(msg) }
func ErrorMsg(msg string) { std.ErrorMsg(msg) }
func FatalMsg(msg string) { std.FatalMsg(msg) }
