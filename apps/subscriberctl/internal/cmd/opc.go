package cmd

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/validate"
	"github.com/spf13/cobra"
	"github.com/wmnsk/milenage"
)

// MILENAGEの鍵長（128bit）
const keyHexLength = 32

func newOPcCmd(a *app) *cobra.Command {
	var k, op string
	cmd := &cobra.Command{
		Use:   "opc",
		Short: "Derive OPc from K and OP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opc, err := deriveOPc(k, op)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, opc)
			return nil
		},
	}
	cmd.Flags().StringVar(&k, "k", "", "subscriber key K (32 hex characters)")
	cmd.Flags().StringVar(&op, "op", "", "operator key OP (32 hex characters)")
	_ = cmd.MarkFlagRequired("k")
	_ = cmd.MarkFlagRequired("op")
	return cmd
}

// deriveOPc はKとOPからOPcを計算し、大文字の16進文字列で返す。
func deriveOPc(k, op string) (string, error) {
	kb, err := decodeKey("k", k)
	if err != nil {
		return "", err
	}
	opb, err := decodeKey("op", op)
	if err != nil {
		return "", err
	}

	opc, err := milenage.ComputeOPc(kb, opb)
	if err != nil {
		return "", fmt.Errorf("failed to compute OPc: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(opc)), nil
}

func decodeKey(name, value string) ([]byte, error) {
	value = validate.StripSpaces(value)
	if _, err := validate.Hex(value, keyHexLength, keyHexLength); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	b, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return b, nil
}
