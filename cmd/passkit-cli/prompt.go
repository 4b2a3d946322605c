package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-passkit/pkg/pass"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("passkit: prompt aborted")

// Prompter abstracts the terminal so the prompt flow can be tested without
// one.
type Prompter interface {
	Input(ctx context.Context, message, defaultValue string) (string, error)
	Select(ctx context.Context, message string, options []string, defaultIndex int) (int, error)
}

type surveyPrompter struct{}

func (surveyPrompter) Input(ctx context.Context, message, defaultValue string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{Message: message, Default: defaultValue}
	if err := survey.AskOne(prompt, &out, survey.WithValidator(survey.Required)); err != nil {
		return "", translateSurveyErr(err)
	}
	return strings.TrimSpace(out), nil
}

func (surveyPrompter) Select(ctx context.Context, message string, options []string, defaultIndex int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	prompt := &survey.Select{Message: message, Options: options}
	if defaultIndex >= 0 && defaultIndex < len(options) {
		prompt.Default = options[defaultIndex]
	}
	var out int
	if err := survey.AskOne(prompt, &out); err != nil {
		return 0, translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

var styleChoices = []pass.Style{
	pass.StyleGeneric,
	pass.StyleBoardingPass,
	pass.StyleCoupon,
	pass.StyleEventTicket,
	pass.StyleStoreCard,
}

var transitChoices = []pass.TransitType{
	pass.TransitAir,
	pass.TransitBoat,
	pass.TransitBus,
	pass.TransitGeneric,
	pass.TransitTrain,
}

// completeRequest asks for every standard identifier the request is missing.
// When askStyle is set the pass style is chosen first; boarding passes without
// a transit type also get a transit prompt.
func completeRequest(ctx context.Context, p Prompter, r *pass.Request, askStyle bool) error {
	if askStyle {
		options := make([]string, len(styleChoices))
		current := 0
		for i, style := range styleChoices {
			options[i] = style.Key()
			if style == r.Style {
				current = i
			}
		}
		idx, err := p.Select(ctx, "Pass style", options, current)
		if err != nil {
			return fmt.Errorf("prompt style: %w", err)
		}
		r.Style = styleChoices[idx]
	}

	identifiers := []struct {
		message string
		target  *string
	}{
		{"Pass type identifier", &r.PassTypeIdentifier},
		{"Serial number", &r.SerialNumber},
		{"Team identifier", &r.TeamIdentifier},
		{"Organization name", &r.OrganizationName},
		{"Description", &r.Description},
	}
	for _, id := range identifiers {
		if *id.target != "" {
			continue
		}
		value, err := p.Input(ctx, id.message, "")
		if err != nil {
			return fmt.Errorf("prompt %s: %w", strings.ToLower(id.message), err)
		}
		*id.target = value
	}

	if r.Style == pass.StyleBoardingPass && r.TransitType == "" {
		options := make([]string, len(transitChoices))
		for i, transit := range transitChoices {
			options[i] = strings.TrimPrefix(string(transit), "PKTransitType")
		}
		idx, err := p.Select(ctx, "Transit type", options, 0)
		if err != nil {
			return fmt.Errorf("prompt transit type: %w", err)
		}
		r.TransitType = transitChoices[idx]
	}
	return nil
}
