package commands

import (
	"fmt"

	"github.com/rpnesseling/adbw/store"
)

// ProfileListCommand lists the saved profiles.
func ProfileListCommand() *CommandResponse {
	return NewSuccessResponse(stores.Profiles())
}

// ProfileShowCommand returns one profile.
func ProfileShowCommand(name string) *CommandResponse {
	p, err := stores.Profile(name)
	if err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(p)
}

// ProfileSaveCommand persists a profile under the given name.
func ProfileSaveCommand(name string, p store.Profile) *CommandResponse {
	if err := stores.SaveProfile(name, p); err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(map[string]interface{}{
		"message": fmt.Sprintf("Saved profile %s", name),
	})
}

// ProfileDeleteCommand removes a profile.
func ProfileDeleteCommand(name string) *CommandResponse {
	if err := stores.DeleteProfile(name); err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(map[string]interface{}{
		"message": fmt.Sprintf("Deleted profile %s", name),
	})
}

// AliasListCommand lists device aliases.
func AliasListCommand() *CommandResponse {
	return NewSuccessResponse(stores.Aliases())
}

// AliasSetCommand maps an alias to a device serial. The device does not
// have to be attached.
func AliasSetCommand(alias, serial string) *CommandResponse {
	if alias == "" || serial == "" {
		return NewErrorResponse(fmt.Errorf("alias and serial are required"))
	}
	if err := stores.SetAlias(alias, serial); err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(map[string]interface{}{
		"message": fmt.Sprintf("Alias %s -> %s", alias, serial),
	})
}

// AliasRemoveCommand deletes an alias.
func AliasRemoveCommand(alias string) *CommandResponse {
	if err := stores.RemoveAlias(alias); err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(map[string]interface{}{
		"message": fmt.Sprintf("Removed alias %s", alias),
	})
}
