package cmd

import (
	"fmt"

	"catalog-manager/feature/auth"
	"catalog-manager/feature/auth/models"

	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var (
	userReq   auth.RegisterRequest
	userRoles []string
)

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account, e.g. the first administrator",
	Example: `  catalog-manager user create --email admin@example.com --password 's3cret-pass' \
    --first Ada --last Lovelace --role Admin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := wire(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		out, err := a.auth.Service().CreateUser(cmd.Context(), userReq, userRoles...)
		if err != nil {
			return err
		}

		fmt.Println("\n--- User Created ---")
		fmt.Printf("ID:     %s\n", out.ID)
		fmt.Printf("Email:  %s\n", out.Email)
		fmt.Printf("Name:   %s %s\n", out.FirstName, out.LastName)
		fmt.Printf("Roles:  %v\n", out.Roles)
		fmt.Println("--------------------")
		return nil
	},
}

func init() {
	f := userCreateCmd.Flags()
	f.StringVar(&userReq.Email, "email", "", "Account email")
	f.StringVar(&userReq.Password, "password", "", "Account password (8 to 72 characters)")
	f.StringVar(&userReq.FirstName, "first", "", "First name")
	f.StringVar(&userReq.LastName, "last", "", "Last name")
	f.StringSliceVar(&userRoles, "role", []string{models.RoleCustomer}, "Roles to grant (repeatable)")
	_ = userCreateCmd.MarkFlagRequired("email")
	_ = userCreateCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userCreateCmd)
	RootCmd.AddCommand(userCmd)
}
