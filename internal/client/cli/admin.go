package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gymtrack/internal/client/services"
)

// errAdminOnly is returned when a non-admin account tries an admin command.
// The check only gates the UI; the backend enforces authorization itself.
var errAdminOnly = errors.New("admin commands require an admin account")

// Admin dispatches the admin console subcommands:
//
//	admin muscles add|edit <id>|del <id>
//	admin exercises add|edit <id>|del <id>
//	admin media add <exercise-id> <file>|del <media-id>
func (a *App) Admin(ctx context.Context, args []string) error {
	if !a.isAdmin() {
		return errAdminOnly
	}
	if len(args) == 0 {
		printlnFn("Usage: admin muscles|exercises|media add|edit|del ...")
		return nil
	}

	section, rest := args[0], args[1:]
	switch section {
	case "muscles":
		return a.adminMuscles(ctx, rest)
	case "exercises":
		return a.adminExercises(ctx, rest)
	case "media":
		return a.adminMedia(ctx, rest)
	default:
		return fmt.Errorf("unknown admin section: %q", section)
	}
}

func (a *App) promptMuscleGroup() (services.MuscleGroupRequest, error) {
	var req services.MuscleGroupRequest
	var err error

	if req.GroupName, err = getSimpleText(a.reader, "Group name", os.Stdout); err != nil {
		return req, err
	}
	if req.Description, err = getSimpleText(a.reader, "Description", os.Stdout); err != nil {
		return req, err
	}
	if req.ThumbnailURL, err = getSimpleText(a.reader, "Thumbnail URL", os.Stdout); err != nil {
		return req, err
	}
	return req, nil
}

func (a *App) adminMuscles(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: admin muscles add|edit <id>|del <id>")
		return nil
	}

	switch args[0] {
	case "add":
		req, err := a.promptMuscleGroup()
		if err != nil {
			return err
		}
		id, err := a.admin.CreateMuscleGroup(ctx, req)
		if err != nil {
			return err
		}
		printlnFn("Created muscle group", id)
		return nil

	case "edit":
		if len(args) != 2 {
			return errors.New("usage: admin muscles edit <id>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		req, err := a.promptMuscleGroup()
		if err != nil {
			return err
		}
		return a.admin.UpdateMuscleGroup(ctx, id, req)

	case "del":
		if len(args) != 2 {
			return errors.New("usage: admin muscles del <id>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		return a.admin.DeleteMuscleGroup(ctx, id)

	default:
		return fmt.Errorf("unknown action: %q", args[0])
	}
}

func (a *App) promptExercise() (services.ExerciseRequest, error) {
	var req services.ExerciseRequest
	var err error

	if req.Name, err = getSimpleText(a.reader, "Exercise name", os.Stdout); err != nil {
		return req, err
	}
	groupID, err := GetInt(a.reader, "Muscle group id", 0, os.Stdout)
	if err != nil {
		return req, err
	}
	req.MuscleGroupID = int64(groupID)
	if req.Difficulty, err = getSimpleText(a.reader, "Difficulty", os.Stdout); err != nil {
		return req, err
	}
	if req.Equipment, err = getSimpleText(a.reader, "Equipment", os.Stdout); err != nil {
		return req, err
	}
	if req.Description, err = getSimpleText(a.reader, "Description", os.Stdout); err != nil {
		return req, err
	}
	return req, nil
}

func (a *App) adminExercises(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: admin exercises add|edit <id>|del <id>")
		return nil
	}

	switch args[0] {
	case "add":
		req, err := a.promptExercise()
		if err != nil {
			return err
		}
		id, err := a.admin.CreateExercise(ctx, req)
		if err != nil {
			return err
		}
		printlnFn("Created exercise", id)
		return nil

	case "edit":
		if len(args) != 2 {
			return errors.New("usage: admin exercises edit <id>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		req, err := a.promptExercise()
		if err != nil {
			return err
		}
		return a.admin.UpdateExercise(ctx, id, req)

	case "del":
		if len(args) != 2 {
			return errors.New("usage: admin exercises del <id>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		return a.admin.DeleteExercise(ctx, id)

	default:
		return fmt.Errorf("unknown action: %q", args[0])
	}
}

func (a *App) adminMedia(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: admin media add <exercise-id> <file>|del <media-id>")
		return nil
	}

	switch args[0] {
	case "add":
		if len(args) != 3 {
			return errors.New("usage: admin media add <exercise-id> <file>")
		}
		exerciseID, err := parseID(args[1])
		if err != nil {
			return err
		}
		data, err := os.ReadFile(args[2])
		if err != nil {
			return err
		}
		media, err := a.admin.AddExerciseMedia(ctx, exerciseID, args[2], data)
		if err != nil {
			return err
		}
		printlnFn("Uploaded media", media.ID, media.URL)
		return nil

	case "del":
		if len(args) != 2 {
			return errors.New("usage: admin media del <media-id>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		return a.admin.DeleteExerciseMedia(ctx, id)

	default:
		return fmt.Errorf("unknown action: %q", args[0])
	}
}
