package resetposition

import (
	"github.com/MaaXYZ/maa-framework-go/v4"
	"github.com/rs/zerolog/log"
)

var _ maa.CustomActionRunner = &ResetCharacterPosition{}

// ResetCharacterPosition walks Menu -> Settings -> Other -> Reset Character -> Confirm.
type ResetCharacterPosition struct{}

func (a *ResetCharacterPosition) Run(ctx *maa.Context, arg *maa.CustomActionArg) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg(logPrefix + " Aborted")
			ok = false
		}
	}()

	params, err := ParseParams(arg.CustomActionParam)
	if err != nil {
		log.Error().Err(err).Str("param", arg.CustomActionParam).Msg(logPrefix + " Failed to parse param")
		return false
	}

	return Execute(newMaaDriver(ctx), params)
}

// Execute runs the reset routine against any Driver.
func Execute(d Driver, p Params) bool {
	return newRunner(d, p).run()
}
