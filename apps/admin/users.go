package main

import (
	"github.com/AnnonDomini/Exam-Bombers-V1/core"
)

// addUser registers a new user through the API.
func (cli *commandLine) addUser(server, uname, pwd, role string) error {
	client, err := cli.newClient(server)
	if err != nil {
		return err
	}
	usr, err := client.register(core.CleanString(uname), pwd, role)
	if err != nil {
		return err
	}
	logger.Infof("created user %q (id %d, role %s)", usr.Username, usr.ID, usr.Role)
	return nil
}

// setRole logs in as admin and changes the role of uname.
func (cli *commandLine) setRole(server, admin, pwd, uname, role string) error {
	client, err := cli.newClient(server)
	if err != nil {
		return err
	}
	if _, err = client.login(admin, pwd); err != nil {
		return err
	}

	users, err := client.users()
	if err != nil {
		return err
	}
	uname = core.CleanString(uname)
	for _, usr := range users {
		if usr.Username == uname {
			if usr, err = client.setRole(usr.ID, role); err != nil {
				return err
			}
			logger.Infof("user %q is now %s", usr.Username, usr.Role)
			return nil
		}
	}
	return errUserNotFound
}
