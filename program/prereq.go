// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package program

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/optakt/sol-transactor/transactor"
)

// DefaultPrereqID is the address of the enrollment program on devnet.
var DefaultPrereqID = solana.MustPublicKeyFromBase58("WBAQSygkwMox2VuWKU133NxFrpDZUBdvSBeaBEue2Jq")

const (
	prereqSeed       = "prereq"
	completeName     = "complete"
	discriminatorLen = 8
)

// CompleteArgs are the arguments of the `complete` instruction.
type CompleteArgs struct {
	Github []byte
}

// Prereq builds instructions for the enrollment program at a given address.
type Prereq struct {
	programID solana.PublicKey
}

// NewPrereq returns a builder for the enrollment program with the given
// address.
func NewPrereq(programID solana.PublicKey) *Prereq {
	p := Prereq{
		programID: programID,
	}
	return &p
}

// Address derives the enrollment account of the signer, from the seeds
// `prereq` and the signer address.
func (p *Prereq) Address(signer solana.PublicKey) (solana.PublicKey, uint8, error) {
	seeds := [][]byte{
		[]byte(prereqSeed),
		signer.Bytes(),
	}
	address, bump, err := solana.FindProgramAddress(seeds, p.programID)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("could not derive enrollment address: %w", err)
	}
	return address, bump, nil
}

// Complete returns the call completing the enrollment of the signer with the
// given GitHub handle.
func (p *Prereq) Complete(signer solana.PublicKey, args CompleteArgs) (transactor.Call, error) {

	enrollment, _, err := p.Address(signer)
	if err != nil {
		return transactor.Call{}, err
	}

	data, err := Encode(completeName, args)
	if err != nil {
		return transactor.Call{}, fmt.Errorf("could not encode arguments: %w", err)
	}

	call := transactor.Call{
		ProgramID: p.programID,
		Accounts: solana.AccountMetaSlice{
			solana.Meta(signer).WRITE().SIGNER(),
			solana.Meta(enrollment).WRITE(),
			solana.Meta(solana.SystemProgramID),
		},
		Data: data,
	}

	return call, nil
}

// Encode serializes instruction arguments the way Anchor programs expect
// them: the instruction discriminator followed by the Borsh encoding of the
// arguments.
func Encode(instruction string, args interface{}) ([]byte, error) {

	buf := &bytes.Buffer{}
	buf.Write(Discriminator(instruction))

	err := bin.NewBorshEncoder(buf).Encode(args)
	if err != nil {
		return nil, fmt.Errorf("could not encode %s arguments: %w", instruction, err)
	}

	return buf.Bytes(), nil
}

// Discriminator returns the eight byte prefix identifying an instruction of
// an Anchor program.
func Discriminator(instruction string) []byte {
	hash := sha256.Sum256([]byte("global:" + instruction))
	return hash[:discriminatorLen]
}
