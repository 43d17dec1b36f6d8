package memory

import "fmt"

func errDuplicateID(id string) error {
	return fmt.Errorf("id already exists: %s", id)
}

func errMissingEndpoint(id string) error {
	return fmt.Errorf("endpoint node does not exist: %s", id)
}
