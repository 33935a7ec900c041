package main

import "fmt"

// Run executes the catalogs command.
func (c *CatalogsCmd) Run(deps *Dependencies) error {
	if len(deps.Catalogs) == 0 {
		fmt.Fprintln(deps.Stdout, "No catalogs configured.")
		return nil
	}

	for _, cat := range deps.Catalogs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", cat.Name, cat.Kind, cat.URL)
	}

	return nil
}
