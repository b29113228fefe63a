// Copyright © 2016 Abcum Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/cosmosfake/cosmosfake/log"
)

// masterAuth holds the bcrypt hash of the password half of --auth, derived
// once in PersistentPreRunE so the plaintext password is never retained
// longer than it takes to hash it.
type masterAuth struct {
	user string
	hash []byte
}

func newMasterAuth(authFlag string) (*masterAuth, error) {
	user, pass, ok := strings.Cut(authFlag, ":")
	if !ok {
		return nil, fmt.Errorf("--auth must be in user:pass format")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &masterAuth{user: user, hash: hash}, nil
}

// verify compares a candidate password against the hashed master password.
func (a *masterAuth) verify(pass string) bool {
	return bcrypt.CompareHashAndPassword(a.hash, []byte(pass)) == nil
}

// promptLogin asks for a password on stdin without echoing it and verifies
// it against auth, used to gate every command when --require-login is set.
func promptLogin(a *masterAuth) error {
	fmt.Printf("password for %s: ", a.user)

	var pass string
	if term.IsTerminal(int(os.Stdin.Fd())) {
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return err
		}
		pass = string(b)
	} else {
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			pass = scanner.Text()
		}
	}

	if !a.verify(pass) {
		log.Errorln("authentication failed")
		return fmt.Errorf("authentication failed")
	}
	return nil
}
