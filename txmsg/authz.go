// Package txmsg builds the native (non-contract) transaction messages the
// dApp submits on remote chains.
package txmsg

import (
	"fmt"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/x/authz"
	stakingtypes "github.com/cosmos/cosmos-sdk/x/staking/types"
)

// DelegateTypeUrl is the message type AuthZ grants and revokes are scoped to.
var DelegateTypeUrl = sdk.MsgTypeURL(&stakingtypes.MsgDelegate{})

// BuildStakeGrant authorizes grantee to delegate on granter's behalf,
// restricted to exactly the listed validator addresses, with no expiration.
// Addresses are kept as given; they are already encoded under the target
// chain's prefix, so the global bech32 config must not touch them.
func BuildStakeGrant(granter, grantee string, validators []string) (*authz.MsgGrant, error) {
	if len(validators) == 0 {
		return nil, fmt.Errorf("stake grant requires at least one validator")
	}
	authorization := &stakingtypes.StakeAuthorization{
		Validators: &stakingtypes.StakeAuthorization_AllowList{
			AllowList: &stakingtypes.StakeAuthorization_Validators{Address: validators},
		},
		AuthorizationType: stakingtypes.AuthorizationType_AUTHORIZATION_TYPE_DELEGATE,
	}
	packed, err := codectypes.NewAnyWithValue(authorization)
	if err != nil {
		return nil, err
	}
	return &authz.MsgGrant{
		Granter: granter,
		Grantee: grantee,
		Grant: authz.Grant{
			Authorization: packed,
			Expiration:    nil,
		},
	}, nil
}

// BuildStakeRevoke revokes the delegate authorization from grantee.
func BuildStakeRevoke(granter, grantee string) *authz.MsgRevoke {
	return &authz.MsgRevoke{
		Granter:    granter,
		Grantee:    grantee,
		MsgTypeUrl: DelegateTypeUrl,
	}
}
