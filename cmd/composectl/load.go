package main

import (
	"fmt"

	compose "github.com/centraunit/compose"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newLoadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "apply an assembly document and print the retained roots",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := viper.GetString("config")

			c := compose.NewContainer()
			if err := registerDemoComponents(c); err != nil {
				return err
			}

			loaded, err := c.LoadConfigFile(path)
			if err != nil {
				return err
			}
			if !loaded {
				fmt.Println("nothing loaded")
				return nil
			}

			for _, root := range c.RetainedRoots() {
				if a, ok := root.(*Announcer); ok {
					fmt.Printf("Announcer: %s\n", a.Greeter.Greet())
					continue
				}
				fmt.Printf("%T\n", root)
			}
			return nil
		},
	}
}

func main() {
	handleError(Execute())
}
