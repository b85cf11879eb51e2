// Package interactive holds the survey-driven forms used by 'contact add -i'
// and 'contact edit -i'.
package interactive

import (
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/tallybook/tallybook-cli/internal/model"
)

type contactAnswers struct {
	Name       string
	Phone      string
	Email      string
	Address    string
	PostalCode string
	Debt       string
	Interest   string
	Deadline   string
	Tags       string
}

// validated adapts a value-type constructor into a survey validator so bad
// input is re-prompted instead of failing the whole form.
func validated(parse func(string) error) survey.Validator {
	return func(ans interface{}) error {
		s, _ := ans.(string)
		return parse(s)
	}
}

func contactQuestions(def contactAnswers) []*survey.Question {
	return []*survey.Question{
		{
			Name:     "name",
			Prompt:   &survey.Input{Message: "Name:", Default: def.Name},
			Validate: validated(func(s string) error { _, err := model.NewName(s); return err }),
		},
		{
			Name:     "phone",
			Prompt:   &survey.Input{Message: "Phone:", Default: def.Phone},
			Validate: validated(func(s string) error { _, err := model.NewPhone(s); return err }),
		},
		{
			Name:     "email",
			Prompt:   &survey.Input{Message: "Email:", Default: def.Email},
			Validate: validated(func(s string) error { _, err := model.NewEmail(s); return err }),
		},
		{
			Name:     "address",
			Prompt:   &survey.Input{Message: "Address:", Default: def.Address},
			Validate: validated(func(s string) error { _, err := model.NewAddress(s); return err }),
		},
		{
			Name:     "postalcode",
			Prompt:   &survey.Input{Message: "Postal code:", Default: def.PostalCode},
			Validate: validated(func(s string) error { _, err := model.NewPostalCode(s); return err }),
		},
		{
			Name:     "debt",
			Prompt:   &survey.Input{Message: "Debt (e.g. 120.50):", Default: def.Debt},
			Validate: validated(func(s string) error { _, err := model.NewDebt(s); return err }),
		},
		{
			Name:     "interest",
			Prompt:   &survey.Input{Message: "Interest percent (optional):", Default: def.Interest},
			Validate: validated(func(s string) error { _, err := model.NewInterest(s); return err }),
		},
		{
			Name:     "deadline",
			Prompt:   &survey.Input{Message: "Deadline DD-MM-YYYY (optional):", Default: def.Deadline},
			Validate: validated(func(s string) error { _, err := model.NewDeadline(s); return err }),
		},
		{
			Name:   "tags",
			Prompt: &survey.Input{Message: "Tags (comma separated, optional):", Default: def.Tags},
			Validate: validated(func(s string) error {
				for _, name := range splitTags(s) {
					if _, err := model.NewTag(name); err != nil {
						return err
					}
				}
				return nil
			}),
		},
	}
}

// ContactForm prompts for every contact field and returns the validated
// person. prefill, when non-nil, seeds the defaults (used by edit).
func ContactForm(prefill *model.Person) (*model.Person, error) {
	var def contactAnswers
	if prefill != nil {
		def = contactAnswers{
			Name:       string(prefill.Name),
			Phone:      string(prefill.Phone),
			Email:      string(prefill.Email),
			Address:    string(prefill.Address),
			PostalCode: string(prefill.PostalCode),
			Debt:       prefill.Debt.String(),
			Interest:   string(prefill.Interest),
			Deadline:   string(prefill.Deadline),
			Tags:       strings.Join(prefill.Tags, ","),
		}
	} else {
		def.Debt = "0"
	}

	var ans contactAnswers
	if err := survey.Ask(contactQuestions(def), &ans); err != nil {
		return nil, err
	}
	return BuildContact(ans.Name, ans.Phone, ans.Email, ans.Address, ans.PostalCode,
		ans.Debt, ans.Interest, ans.Deadline, splitTags(ans.Tags))
}

// Confirm asks a yes/no question, defaulting to no.
func Confirm(message string) bool {
	ok := false
	_ = survey.AskOne(&survey.Confirm{Message: message}, &ok)
	return ok
}

// BuildContact runs every field through its value-type constructor and
// assembles the person. Shared by the interactive form and the flag-driven
// path so both validate identically.
func BuildContact(name, phone, email, address, postal, debt, interest, deadline string, tags []string) (*model.Person, error) {
	n, err := model.NewName(name)
	if err != nil {
		return nil, err
	}
	ph, err := model.NewPhone(phone)
	if err != nil {
		return nil, err
	}
	e, err := model.NewEmail(email)
	if err != nil {
		return nil, err
	}
	a, err := model.NewAddress(address)
	if err != nil {
		return nil, err
	}
	pc, err := model.NewPostalCode(postal)
	if err != nil {
		return nil, err
	}
	d, err := model.NewDebt(debt)
	if err != nil {
		return nil, err
	}
	in, err := model.NewInterest(interest)
	if err != nil {
		return nil, err
	}
	dl, err := model.NewDeadline(deadline)
	if err != nil {
		return nil, err
	}
	for _, t := range tags {
		if _, err := model.NewTag(t); err != nil {
			return nil, err
		}
	}
	return model.NewPerson(n, ph, e, a, pc, d, in, dl, tags), nil
}

func splitTags(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
