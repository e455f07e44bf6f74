package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/five82/lectio/internal/app"
	"github.com/five82/lectio/internal/form"
	"github.com/five82/lectio/internal/guideapi"
	"github.com/five82/lectio/internal/prefs"
	"github.com/five82/lectio/internal/submit"
)

type generateFlags struct {
	title    string
	audience string
	model    string
	fileIDs  []string
}

func newGenerateCommand(opts *app.Options) *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a study guide without the TUI",
		Long: `Submit up to eight Drive file ids with a series title. Audience and model
default to the last values used.`,
		Example: `  lectio generate --title "Romans" --file 1AbC --file 2DeF
  lectio generate --title "Psalms" --audience Mixed --model gpt-4o --file 1AbC,2DeF`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := app.Setup(*opts)
			if err != nil {
				return err
			}
			defer env.Close()
			return runGenerate(cmd.Context(), cmd.OutOrStdout(), env, flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.title, "title", "t", "", "series title")
	f.StringVarP(&flags.audience, "audience", "a", "", fmt.Sprintf("target audience: %s", joinChoices(form.Audiences)))
	f.StringVarP(&flags.model, "model", "m", "", fmt.Sprintf("model: %s", joinChoices(form.Models)))
	f.StringSliceVarP(&flags.fileIDs, "file", "f", nil, "Drive file id (repeatable, at most 8)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runGenerate(ctx context.Context, w io.Writer, env *app.Env, flags generateFlags) error {
	fields, err := resolveFields(flags, env.Prefs)
	if err != nil {
		return err
	}

	ctrl := env.NewController(nil)
	ctrl.SetTitle(fields.SeriesTitle)
	ctrl.SetAudience(fields.Audience)
	ctrl.SetModel(fields.Model)

	files := lookupFiles(ctx, env, flags.fileIDs)
	if err := ctrl.SelectByID(files); err != nil {
		return err
	}

	fmt.Fprintf(w, "Generating study guide from %d file(s). This can take several minutes...\n", len(files))
	out, err := ctrl.Submit(ctx)
	if err != nil {
		return err
	}
	if out.Phase != submit.PhaseSuccess {
		return errors.New(out.Message)
	}

	p := env.Prefs
	p.Audience = string(fields.Audience)
	p.Model = string(fields.Model)
	if err := prefs.Save(env.PrefsPath, p); err != nil {
		env.Logger.Warn("save prefs", zap.Error(err))
	}

	if out.Filename != "" {
		fmt.Fprintf(w, "Saved %s\n", out.Filename)
	}
	fmt.Fprintln(w, out.FileURL)
	return nil
}

// resolveFields fills audience and model from the flags, falling back to the
// remembered choices and then to the first offered value.
func resolveFields(flags generateFlags, p prefs.Prefs) (form.Fields, error) {
	title := strings.TrimSpace(flags.title)
	if title == "" {
		return form.Fields{}, fmt.Errorf("series title is required")
	}

	rawAudience := firstNonBlank(flags.audience, p.Audience, string(form.Audiences[0]))
	audience, ok := matchChoice(form.Audiences, rawAudience)
	if !ok {
		return form.Fields{}, fmt.Errorf("unknown audience %q (want %s)", rawAudience, joinChoices(form.Audiences))
	}
	rawModel := firstNonBlank(flags.model, p.Model, string(form.Models[0]))
	model, ok := matchChoice(form.Models, rawModel)
	if !ok {
		return form.Fields{}, fmt.Errorf("unknown model %q (want %s)", rawModel, joinChoices(form.Models))
	}
	return form.Fields{SeriesTitle: title, Audience: audience, Model: model}, nil
}

// lookupFiles resolves display names for the given ids. Ids the listing does
// not know are kept with the id as their name; the backend has the final say.
func lookupFiles(ctx context.Context, env *app.Env, ids []string) []guideapi.DriveFile {
	ids = lo.Uniq(lo.Compact(lo.Map(ids, func(id string, _ int) string { return strings.TrimSpace(id) })))

	known := map[string]guideapi.DriveFile{}
	if listed, err := env.Client.ListFiles(ctx); err != nil {
		env.Logger.Debug("resolve file names", zap.Error(err))
	} else {
		known = lo.KeyBy(listed, func(f guideapi.DriveFile) string { return f.ID })
	}

	return lo.Map(ids, func(id string, _ int) guideapi.DriveFile {
		if f, ok := known[id]; ok {
			return f
		}
		return guideapi.DriveFile{ID: id, Name: id}
	})
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// matchChoice finds value among choices ignoring case.
func matchChoice[T ~string](choices []T, value string) (T, bool) {
	return lo.Find(choices, func(c T) bool { return strings.EqualFold(string(c), value) })
}

func joinChoices[T ~string](choices []T) string {
	return strings.Join(lo.Map(choices, func(c T, _ int) string { return string(c) }), ", ")
}
