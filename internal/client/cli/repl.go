package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = func(args ...any) { fmt.Println(args...) }

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	Whoami(ctx context.Context) error

	MuscleGroups(ctx context.Context) error
	Exercises(ctx context.Context) error
	ShowExercise(ctx context.Context, id string) error

	Plans(ctx context.Context) error
	ShowPlan(ctx context.Context, id string) error
	NewPlan(ctx context.Context) error
	EditPlan(ctx context.Context, id string) error
	DeletePlan(ctx context.Context, id string) error
	ClonePlan(ctx context.Context, id string) error
	AddScheduleDay(ctx context.Context, planID string) error
	AddScheduleExercise(ctx context.Context, scheduleID string) error
	EditScheduleExercise(ctx context.Context, planExerciseID string) error
	RemoveScheduleExercise(ctx context.Context, planExerciseID string) error

	LogWorkout(ctx context.Context) error
	History(ctx context.Context, args []string) error
	ShowWorkout(ctx context.Context, id string) error
	DeleteWorkout(ctx context.Context, id string) error

	Stats(ctx context.Context) error
	WeightChart(ctx context.Context, args []string) error
	RecordMetrics(ctx context.Context) error
	Profile(ctx context.Context) error

	Admin(ctx context.Context, args []string) error
}

// commands that take a single id argument, mapped to their handlers.
func idCommand(a execIface, cmd string) func(context.Context, string) error {
	switch cmd {
	case "exercise":
		return a.ShowExercise
	case "plan":
		return a.ShowPlan
	case "editplan":
		return a.EditPlan
	case "delplan":
		return a.DeletePlan
	case "clone":
		return a.ClonePlan
	case "addday":
		return a.AddScheduleDay
	case "addex":
		return a.AddScheduleExercise
	case "editex":
		return a.EditScheduleExercise
	case "delex":
		return a.RemoveScheduleExercise
	case "workout":
		return a.ShowWorkout
	case "delworkout":
		return a.DeleteWorkout
	default:
		return nil
	}
}

func printHelp(a execIface) {
	if !a.isLoggedIn() {
		printlnFn("Available commands: register, login, forgot, muscles, exercises, exercise <id>, exit")
		return
	}
	printlnFn("Catalog:  muscles, exercises, exercise <id>")
	printlnFn("Plans:    plans, plan <id>, newplan, editplan <id>, delplan <id>, clone <id>,")
	printlnFn("          addday <plan-id>, addex <schedule-id>, editex <id>, delex <id>")
	printlnFn("Training: log, history [month year], workout <id>, delworkout <id>")
	printlnFn("Body:     stats, weight [range], metrics, profile")
	printlnFn("Account:  whoami, logout, exit")
	if a.isAdmin() {
		printlnFn("Admin:    admin muscles|exercises|media ... (type 'admin' for details)")
	}
}

// runREPL starts the gymtrack read–eval–print loop.
//
// It reads a line from the scanner, parses the first token as the command,
// and dispatches to methods on 'a'. Unknown commands are reported back to
// the user. The loop exits on scanner EOF or when the user types "exit" or
// "quit". Errors returned by handlers are printed and the loop continues;
// a session invalidated by a 401 simply shows up as a logged-out prompt on
// the next iteration.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		fmt.Printf("gym %s> ", statusFn())
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			printHelp(a)

		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "forgot":
			err = a.ForgotPassword(ctx)
		case "whoami":
			err = a.Whoami(ctx)

		case "muscles":
			err = a.MuscleGroups(ctx)
		case "exercises":
			err = a.Exercises(ctx)
		case "plans":
			err = a.Plans(ctx)
		case "newplan":
			err = a.NewPlan(ctx)
		case "log":
			err = a.LogWorkout(ctx)
		case "history":
			err = a.History(ctx, args)
		case "stats":
			err = a.Stats(ctx)
		case "weight":
			err = a.WeightChart(ctx, args)
		case "metrics":
			err = a.RecordMetrics(ctx)
		case "profile":
			err = a.Profile(ctx)

		case "admin":
			err = a.Admin(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			if handler := idCommand(a, cmd); handler != nil {
				if len(args) != 1 {
					printlnFn("Usage:", cmd, "<id>")
					continue
				}
				err = handler(ctx, args[0])
			} else {
				printlnFn("Unknown command:", cmd)
			}
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
