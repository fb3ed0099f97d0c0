package tui

import "context"

// cmdKind tags which variant of Cmd a value holds.
type cmdKind int

const (
	cmdNone cmdKind = iota
	cmdQuit
	cmdMsg
	cmdBatch
	cmdTask
	cmdSetTitle
	cmdSpawnSub
	cmdStopSub
	cmdPrintLine
)

// Cmd is the runtime's side-effect description: Update returns one, the
// runtime loop executes it, and execution may itself produce further
// Msgs fed back into Update. Cmd values are built with the constructor
// functions below (None, Quit, Msg, Batch, Task, SetTitle, SpawnSub,
// StopSub, Println) rather than by constructing the struct directly.
type Cmd struct {
	kind  cmdKind
	msg   Msg
	batch []Cmd
	task  func(ctx context.Context) Msg
	title string
	sub   Subscription
	subID SubID
	line  string
}

// None is the no-op Cmd: nothing happens.
func None() Cmd { return Cmd{kind: cmdNone} }

// Quit tells the runtime loop to stop. If Quit appears anywhere in a
// Batch tree, it short-circuits: traversal of that Batch (and any Batch
// containing it) stops immediately, so Cmds ordered after the Quit never
// run.
func Quit() Cmd { return Cmd{kind: cmdQuit} }

// Emit wraps msg as an immediately-delivered message: the runtime calls
// Update(msg) again before the next View.
func Emit(msg Msg) Cmd { return Cmd{kind: cmdMsg, msg: msg} }

// Batch runs every Cmd in cmds in order, except that a Quit anywhere in
// the tree stops traversal at that point: Cmds after it, in this Batch or
// any enclosing one, never run.
func Batch(cmds ...Cmd) Cmd { return Cmd{kind: cmdBatch, batch: cmds} }

// Task schedules fn to run asynchronously (on its own goroutine), so fn
// may block without stalling the loop; its return value, once ready, is
// delivered to Update as a Msg on a later tick, unless the runtime's
// message queue is full at that moment, in which case it is dropped. The
// ctx passed to fn is context.Background(): the runtime never cancels it,
// and Run does not wait for pending Tasks before returning.
func Task(fn func(ctx context.Context) Msg) Cmd { return Cmd{kind: cmdTask, task: fn} }

// SetTitle asks the terminal writer to update the window title.
func SetTitle(title string) Cmd { return Cmd{kind: cmdSetTitle, title: title} }

// SpawnSub starts sub running under id; events it produces are delivered
// to Update as Msgs until StopSub(id) or the runtime exits.
func SpawnSub(id SubID, sub Subscription) Cmd { return Cmd{kind: cmdSpawnSub, subID: id, sub: sub} }

// StopSub stops the subscription previously started under id.
func StopSub(id SubID) Cmd { return Cmd{kind: cmdStopSub, subID: id} }

// Println prints line above the live region via TerminalWriter.WriteLog,
// which writes and flushes it as soon as the runtime executes this Cmd;
// the same "print above the UI" facility bubbletea-style runtimes expose.
func Println(line string) Cmd { return Cmd{kind: cmdPrintLine, line: line} }
