package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fisty/mcsfix/internal/errors"
	"github.com/fisty/mcsfix/internal/logging"
)

// AddFlagValidation adds validation for a specific local flag
func AddFlagValidation(cmd *cobra.Command, flagName string, validator func(string) error) {
	wrapFlag(cmd.Flags().Lookup(flagName), validator)
}

// AddPersistentFlagValidation adds validation for a persistent flag
func AddPersistentFlagValidation(cmd *cobra.Command, flagName string, validator func(string) error) {
	wrapFlag(cmd.PersistentFlags().Lookup(flagName), validator)
}

func wrapFlag(flag *pflag.Flag, validator func(string) error) {
	if flag == nil {
		return
	}

	// Store original value setter
	originalSet := flag.Value.Set

	flag.Value = &validatingValue{
		Value:       flag.Value,
		validator:   validator,
		originalSet: originalSet,
	}
}

type validatingValue struct {
	pflag.Value
	validator   func(string) error
	originalSet func(string) error
}

func (v *validatingValue) Set(val string) error {
	if v.validator != nil {
		if err := v.validator(val); err != nil {
			return err
		}
	}
	return v.originalSet(val)
}

// ValidateLogLevel accepts the level names understood by the logger
func ValidateLogLevel(level string) error {
	if _, err := logging.ParseLevel(level); err != nil {
		return errors.NewValidationError(errors.ErrCodeValidation, err.Error())
	}
	return nil
}

// ValidateChoice returns a validator accepting only the given values
func ValidateChoice(choices ...string) func(string) error {
	return func(val string) error {
		for _, c := range choices {
			if val == c {
				return nil
			}
		}
		return errors.NewValidationError(errors.ErrCodeValidation,
			fmt.Sprintf("invalid value %q, must be one of: %s", val, strings.Join(choices, ", ")))
	}
}
