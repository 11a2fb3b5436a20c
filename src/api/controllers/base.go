package controllers

import (
	"errors"

	"fleetwatch/src/repositories"
	"fleetwatch/src/utils"
)

func translateRepoError(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return utils.NotFound("record not found")
	}
	return err
}
