package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubExec records which handlers the REPL dispatched to.
type stubExec struct {
	loggedIn bool
	admin    bool

	calls []string
	errs  map[string]error
}

func (s *stubExec) record(name string, args ...string) error {
	call := name
	if len(args) > 0 {
		call = name + " " + strings.Join(args, " ")
	}
	s.calls = append(s.calls, call)
	return s.errs[name]
}

func (s *stubExec) isLoggedIn() bool { return s.loggedIn }
func (s *stubExec) isAdmin() bool    { return s.admin }

func (s *stubExec) Register(ctx context.Context) error       { return s.record("register") }
func (s *stubExec) Login(ctx context.Context) error          { return s.record("login") }
func (s *stubExec) Logout(ctx context.Context) error         { return s.record("logout") }
func (s *stubExec) ForgotPassword(ctx context.Context) error { return s.record("forgot") }
func (s *stubExec) Whoami(ctx context.Context) error         { return s.record("whoami") }

func (s *stubExec) MuscleGroups(ctx context.Context) error { return s.record("muscles") }
func (s *stubExec) Exercises(ctx context.Context) error    { return s.record("exercises") }
func (s *stubExec) ShowExercise(ctx context.Context, id string) error {
	return s.record("exercise", id)
}

func (s *stubExec) Plans(ctx context.Context) error                { return s.record("plans") }
func (s *stubExec) ShowPlan(ctx context.Context, id string) error  { return s.record("plan", id) }
func (s *stubExec) NewPlan(ctx context.Context) error              { return s.record("newplan") }
func (s *stubExec) EditPlan(ctx context.Context, id string) error  { return s.record("editplan", id) }
func (s *stubExec) DeletePlan(ctx context.Context, id string) error {
	return s.record("delplan", id)
}
func (s *stubExec) ClonePlan(ctx context.Context, id string) error { return s.record("clone", id) }
func (s *stubExec) AddScheduleDay(ctx context.Context, planID string) error {
	return s.record("addday", planID)
}
func (s *stubExec) AddScheduleExercise(ctx context.Context, scheduleID string) error {
	return s.record("addex", scheduleID)
}
func (s *stubExec) EditScheduleExercise(ctx context.Context, planExerciseID string) error {
	return s.record("editex", planExerciseID)
}
func (s *stubExec) RemoveScheduleExercise(ctx context.Context, planExerciseID string) error {
	return s.record("delex", planExerciseID)
}

func (s *stubExec) LogWorkout(ctx context.Context) error { return s.record("log") }
func (s *stubExec) History(ctx context.Context, args []string) error {
	return s.record("history", args...)
}
func (s *stubExec) ShowWorkout(ctx context.Context, id string) error {
	return s.record("workout", id)
}
func (s *stubExec) DeleteWorkout(ctx context.Context, id string) error {
	return s.record("delworkout", id)
}

func (s *stubExec) Stats(ctx context.Context) error { return s.record("stats") }
func (s *stubExec) WeightChart(ctx context.Context, args []string) error {
	return s.record("weight", args...)
}
func (s *stubExec) RecordMetrics(ctx context.Context) error { return s.record("metrics") }
func (s *stubExec) Profile(ctx context.Context) error       { return s.record("profile") }

func (s *stubExec) Admin(ctx context.Context, args []string) error {
	return s.record("admin", args...)
}

// capturePrintln routes printlnFn into a slice for the duration of a test.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(args ...any) { lines = append(lines, fmt.Sprintln(args...)) }
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func runInput(a execIface, input string) {
	scanner := bufio.NewScanner(strings.NewReader(input))
	runREPL(context.Background(), a, func() string { return "" }, scanner)
}

func TestREPL_DispatchesCommands(t *testing.T) {
	capturePrintln(t)
	stub := &stubExec{loggedIn: true}

	runInput(stub, "login\nplans\nhistory 9 2026\nweight 1month\nexit\n")

	assert.Equal(t, []string{"login", "plans", "history 9 2026", "weight 1month"}, stub.calls)
}

func TestREPL_IDCommands(t *testing.T) {
	lines := capturePrintln(t)
	stub := &stubExec{loggedIn: true}

	runInput(stub, "plan 5\nexercise 7\ndelworkout 9\nplan\n")

	assert.Equal(t, []string{"plan 5", "exercise 7", "delworkout 9"}, stub.calls)
	// Missing id argument prints usage instead of dispatching.
	assert.Contains(t, strings.Join(*lines, ""), "Usage: plan <id>")
}

func TestREPL_UnknownCommand(t *testing.T) {
	lines := capturePrintln(t)
	stub := &stubExec{}

	runInput(stub, "frobnicate\n")

	assert.Empty(t, stub.calls)
	assert.Contains(t, strings.Join(*lines, ""), "Unknown command: frobnicate")
}

func TestREPL_HandlerErrorKeepsLoopAlive(t *testing.T) {
	lines := capturePrintln(t)
	stub := &stubExec{errs: map[string]error{"login": errors.New("invalid credentials")}}

	runInput(stub, "login\nmuscles\nexit\n")

	assert.Equal(t, []string{"login", "muscles"}, stub.calls)
	assert.Contains(t, strings.Join(*lines, ""), "Error: invalid credentials")
}

func TestREPL_BlankLinesIgnored(t *testing.T) {
	capturePrintln(t)
	stub := &stubExec{}

	runInput(stub, "\n   \nwhoami\n")

	assert.Equal(t, []string{"whoami"}, stub.calls)
}

func TestPrintHelp_GatedByState(t *testing.T) {
	lines := capturePrintln(t)

	printHelp(&stubExec{})
	anon := strings.Join(*lines, "")
	assert.Contains(t, anon, "register, login")
	assert.NotContains(t, anon, "Admin:")

	*lines = nil
	printHelp(&stubExec{loggedIn: true})
	user := strings.Join(*lines, "")
	assert.Contains(t, user, "Plans:")
	assert.NotContains(t, user, "Admin:")

	*lines = nil
	printHelp(&stubExec{loggedIn: true, admin: true})
	assert.Contains(t, strings.Join(*lines, ""), "Admin:")
}
