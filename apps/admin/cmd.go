package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/AnnonDomini/Exam-Bombers-V1/core/user"
)

const defaultServer = "http://localhost:8000"

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp         = errors.New("help provided")
	errUserNotFound = errors.New("user not found")
)

type commandLine struct {
	newClient func(baseURL string) (*apiClient, error)
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  adduser -username USERNAME [-role student|teacher] [-server URL] - register a user")
	fmt.Println("  setrole -admin ADMIN -username USERNAME -role student|teacher [-server URL] - change a user's role")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ContinueOnError)
	addUserServer := addUserCmd.String("server", defaultServer, "The API base URL.")
	addUserUname := addUserCmd.String("username", "", "The new user's username. The password will be prompted next.")
	addUserRole := addUserCmd.String("role", user.DefaultRole, "The new user's role.")

	setRoleCmd := flag.NewFlagSet("setrole", flag.ContinueOnError)
	setRoleServer := setRoleCmd.String("server", defaultServer, "The API base URL.")
	setRoleAdmin := setRoleCmd.String("admin", "", "The admin's username. The admin's password will be prompted next.")
	setRoleUname := setRoleCmd.String("username", "", "The username of the user to update.")
	setRoleRole := setRoleCmd.String("role", "", "The new role.")

	switch args[1] {
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserUname == "" {
			addUserCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword("Enter password:")
		if err != nil {
			return err
		}
		if pwd == "" {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserServer, *addUserUname, pwd, *addUserRole)

	case "setrole":
		if err := setRoleCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *setRoleAdmin == "" || *setRoleUname == "" || *setRoleRole == "" {
			setRoleCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword("Enter admin password:")
		if err != nil {
			return err
		}
		if pwd == "" {
			setRoleCmd.Usage()
			return errHelp
		}
		return cli.setRole(*setRoleServer, *setRoleAdmin, pwd, *setRoleUname, *setRoleRole)

	default:
		cli.printUsage()
		return errHelp
	}
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}
