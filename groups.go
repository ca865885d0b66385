package ffdh

import (
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/backkem/ffdh-go/internal/bigmod"
)

// Param describes one finite-field DH parameter set: the prime modulus and
// generator as big-endian hex strings, the private exponent length in bytes,
// and the group name. The five RFC 7919-style groups ship as package-level
// values; custom parameter sets can be constructed literally, but a Param
// must not be copied once used, as it lazily caches its modulus context.
type Param struct {
	// P is the prime modulus, big-endian hex.
	P string

	// G is the generator, big-endian hex.
	G string

	// SecretLen is the length of a private exponent in bytes. It tracks the
	// per-group minimum entropy target rather than the full modulus width, a
	// deliberate strength/performance trade-off.
	SecretLen int

	// Name identifies the parameter set.
	Name string

	once    sync.Once
	modulus *bigmod.Modulus
	modErr  error
}

// FFDHE2048 is the 2048-bit group.
var FFDHE2048 = &Param{
	P: "FFFFFFFFFFFFFFFFADF85458A2BB4A9AAFDC5620273D3CF1D8B9C583CE2D3695" +
		"A9E13641146433FBCC939DCE249B3EF97D2FE363630C75D8F681B202AEC4617A" +
		"D3DF1ED5D5FD65612433F51F5F066ED0856365553DED1AF3B557135E7F57C935" +
		"984F0C70E0E68B77E2A689DAF3EFE8721DF158A136ADE73530ACCA4F483A797A" +
		"BC0AB182B324FB61D108A94BB2C8E3FBB96ADAB760D7F4681D4F42A3DE394DF4" +
		"AE56EDE76372BB190B07A7C8EE0A6D709E02FCE1CDF7E2ECC03404CD28342F61" +
		"9172FE9CE98583FF8E4F1232EEF28183C3FE3B1B4C6FAD733BB5FCBC2EC22005" +
		"C58EF1837D1683B2C6F34A26C1B2EFFA886B423861285C97FFFFFFFFFFFFFFFF",
	G:         "02",
	SecretLen: 29,
	Name:      "ffdhe2048",
}

// FFDHE3072 is the 3072-bit group.
var FFDHE3072 = &Param{
	P: "FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74" +
		"020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F1437" +
		"4FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7ED" +
		"EE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3DC2007CB8A163BF05" +
		"98DA48361C55D39A69163FA8FD24CF5F83655D23DCA3AD961C62F356208552BB" +
		"9ED529077096966D670C354E4ABC9804F1746C08CA18217C32905E462E36CE3B" +
		"E39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9DE2BCBF695581718" +
		"3995497CEA956AE515D2261898FA051015728E5A8AAAC42DAD33170D04507A33" +
		"A85521ABDF1CBA64ECFB850458DBEF0A8AEA71575D060C7DB3970F85A6E1E4C7" +
		"ABF5AE8CDB0933D71E8C94E04A25619DCEE3D2261AD2EE6BF12FFA06D98A0864" +
		"D87602733EC86A64521F2B18177B200CBBE117577A615D6C770988C0BAD946E2" +
		"08E24FA074E5AB3143DB5BFCE0FD108E4B82D120A93AD2CAFFFFFFFFFFFFFFFF",
	G:         "02",
	SecretLen: 36,
	Name:      "ffdhe3072",
}

// FFDHE4096 is the 4096-bit group.
var FFDHE4096 = &Param{
	P: "FFFFFFFFFFFFFFFFADF85458A2BB4A9AAFDC5620273D3CF1D8B9C583CE2D3695" +
		"A9E13641146433FBCC939DCE249B3EF97D2FE363630C75D8F681B202AEC4617A" +
		"D3DF1ED5D5FD65612433F51F5F066ED0856365553DED1AF3B557135E7F57C935" +
		"984F0C70E0E68B77E2A689DAF3EFE8721DF158A136ADE73530ACCA4F483A797A" +
		"BC0AB182B324FB61D108A94BB2C8E3FBB96ADAB760D7F4681D4F42A3DE394DF4" +
		"AE56EDE76372BB190B07A7C8EE0A6D709E02FCE1CDF7E2ECC03404CD28342F61" +
		"9172FE9CE98583FF8E4F1232EEF28183C3FE3B1B4C6FAD733BB5FCBC2EC22005" +
		"C58EF1837D1683B2C6F34A26C1B2EFFA886B4238611FCFDCDE355B3B6519035B" +
		"BC34F4DEF99C023861B46FC9D6E6C9077AD91D2691F7F7EE598CB0FAC186D91C" +
		"AEFE130985139270B4130C93BC437944F4FD4452E2D74DD364F2E21E71F54BFF" +
		"5CAE82AB9C9DF69EE86D2BC522363A0DABC521979B0DEADA1DBF9A42D5C4484E" +
		"0ABCD06BFA53DDEF3C1B20EE3FD59D7C25E41D2B669E1EF16E6F52C3164DF4FB" +
		"7930E9E4E58857B6AC7D5F42D69F6D187763CF1D5503400487F55BA57E31CC7A" +
		"7135C886EFB4318AED6A1E012D9E6832A907600A918130C46DC778F971AD0038" +
		"092999A333CB8B7A1A1DB93D7140003C2A4ECEA9F98D0ACC0A8291CDCEC97DCF" +
		"8EC9B55A7F88A46B4DB5A851F44182E1C68A007E5E655F6AFFFFFFFFFFFFFFFF",
	G:         "02",
	SecretLen: 43,
	Name:      "ffdhe4096",
}

// FFDHE6144 is the 6144-bit group.
var FFDHE6144 = &Param{
	P: "FFFFFFFFFFFFFFFFADF85458A2BB4A9AAFDC5620273D3CF1D8B9C583CE2D3695" +
		"A9E13641146433FBCC939DCE249B3EF97D2FE363630C75D8F681B202AEC4617A" +
		"D3DF1ED5D5FD65612433F51F5F066ED0856365553DED1AF3B557135E7F57C935" +
		"984F0C70E0E68B77E2A689DAF3EFE8721DF158A136ADE73530ACCA4F483A797A" +
		"BC0AB182B324FB61D108A94BB2C8E3FBB96ADAB760D7F4681D4F42A3DE394DF4" +
		"AE56EDE76372BB190B07A7C8EE0A6D709E02FCE1CDF7E2ECC03404CD28342F61" +
		"9172FE9CE98583FF8E4F1232EEF28183C3FE3B1B4C6FAD733BB5FCBC2EC22005" +
		"C58EF1837D1683B2C6F34A26C1B2EFFA886B4238611FCFDCDE355B3B6519035B" +
		"BC34F4DEF99C023861B46FC9D6E6C9077AD91D2691F7F7EE598CB0FAC186D91C" +
		"AEFE130985139270B4130C93BC437944F4FD4452E2D74DD364F2E21E71F54BFF" +
		"5CAE82AB9C9DF69EE86D2BC522363A0DABC521979B0DEADA1DBF9A42D5C4484E" +
		"0ABCD06BFA53DDEF3C1B20EE3FD59D7C25E41D2B669E1EF16E6F52C3164DF4FB" +
		"7930E9E4E58857B6AC7D5F42D69F6D187763CF1D5503400487F55BA57E31CC7A" +
		"7135C886EFB4318AED6A1E012D9E6832A907600A918130C46DC778F971AD0038" +
		"092999A333CB8B7A1A1DB93D7140003C2A4ECEA9F98D0ACC0A8291CDCEC97DCF" +
		"8EC9B55A7F88A46B4DB5A851F44182E1C68A007E5E0DD9020BFD64B645036C7A" +
		"4E677D2C38532A3A23BA4442CAF53EA63BB454329B7624C8917BDD64B1C0FD4C" +
		"B38E8C334C701C3ACDAD0657FCCFEC719B1F5C3E4E46041F388147FB4CFDB477" +
		"A52471F7A9A96910B855322EDB6340D8A00EF092350511E30ABEC1FFF9E3A26E" +
		"7FB29F8C183023C3587E38DA0077D9B4763E4E4B94B2BBC194C6651E77CAF992" +
		"EEAAC0232A281BF6B3A739C1226116820AE8DB5847A67CBEF9C9091B462D538C" +
		"D72B03746AE77F5E62292C311562A846505DC82DB854338AE49F5235C95B9117" +
		"8CCF2DD5CACEF403EC9D1810C6272B045B3B71F9DC6B80D63FDD4A8E9ADB1E69" +
		"62A69526D43161C1A41D570D7938DAD4A40E329CD0E40E65FFFFFFFFFFFFFFFF",
	G:         "02",
	SecretLen: 49,
	Name:      "ffdhe6144",
}

// FFDHE8192 is the 8192-bit group.
var FFDHE8192 = &Param{
	P: "FFFFFFFFFFFFFFFFADF85458A2BB4A9AAFDC5620273D3CF1D8B9C583CE2D3695" +
		"A9E13641146433FBCC939DCE249B3EF97D2FE363630C75D8F681B202AEC4617A" +
		"D3DF1ED5D5FD65612433F51F5F066ED0856365553DED1AF3B557135E7F57C935" +
		"984F0C70E0E68B77E2A689DAF3EFE8721DF158A136ADE73530ACCA4F483A797A" +
		"BC0AB182B324FB61D108A94BB2C8E3FBB96ADAB760D7F4681D4F42A3DE394DF4" +
		"AE56EDE76372BB190B07A7C8EE0A6D709E02FCE1CDF7E2ECC03404CD28342F61" +
		"9172FE9CE98583FF8E4F1232EEF28183C3FE3B1B4C6FAD733BB5FCBC2EC22005" +
		"C58EF1837D1683B2C6F34A26C1B2EFFA886B4238611FCFDCDE355B3B6519035B" +
		"BC34F4DEF99C023861B46FC9D6E6C9077AD91D2691F7F7EE598CB0FAC186D91C" +
		"AEFE130985139270B4130C93BC437944F4FD4452E2D74DD364F2E21E71F54BFF" +
		"5CAE82AB9C9DF69EE86D2BC522363A0DABC521979B0DEADA1DBF9A42D5C4484E" +
		"0ABCD06BFA53DDEF3C1B20EE3FD59D7C25E41D2B669E1EF16E6F52C3164DF4FB" +
		"7930E9E4E58857B6AC7D5F42D69F6D187763CF1D5503400487F55BA57E31CC7A" +
		"7135C886EFB4318AED6A1E012D9E6832A907600A918130C46DC778F971AD0038" +
		"092999A333CB8B7A1A1DB93D7140003C2A4ECEA9F98D0ACC0A8291CDCEC97DCF" +
		"8EC9B55A7F88A46B4DB5A851F44182E1C68A007E5E0DD9020BFD64B645036C7A" +
		"4E677D2C38532A3A23BA4442CAF53EA63BB454329B7624C8917BDD64B1C0FD4C" +
		"B38E8C334C701C3ACDAD0657FCCFEC719B1F5C3E4E46041F388147FB4CFDB477" +
		"A52471F7A9A96910B855322EDB6340D8A00EF092350511E30ABEC1FFF9E3A26E" +
		"7FB29F8C183023C3587E38DA0077D9B4763E4E4B94B2BBC194C6651E77CAF992" +
		"EEAAC0232A281BF6B3A739C1226116820AE8DB5847A67CBEF9C9091B462D538C" +
		"D72B03746AE77F5E62292C311562A846505DC82DB854338AE49F5235C95B9117" +
		"8CCF2DD5CACEF403EC9D1810C6272B045B3B71F9DC6B80D63FDD4A8E9ADB1E69" +
		"62A69526D43161C1A41D570D7938DAD4A40E329CCFF46AAA36AD004CF600C838" +
		"1E425A31D951AE64FDB23FCEC9509D43687FEB69EDD1CC5E0B8CC3BDF64B10EF" +
		"86B63142A3AB8829555B2F747C932665CB2C0F1CC01BD70229388839D2AF05E4" +
		"54504AC78B7582822846C0BA35C35F5C59160CC046FD8251541FC68C9C86B022" +
		"BB7099876A460E7451A8A93109703FEE1C217E6C3826E52C51AA691E0E423CFC" +
		"99E9E31650C1217B624816CDAD9A95F9D5B8019488D9C0A0A1FE3075A577E231" +
		"83F81D4A3F2FA4571EFC8CE0BA8A4FE8B6855DFE72B0A66EDED2FBABFBE58A30" +
		"FAFABE1C5D71A87E2F741EF8C1FE86FEA6BBFDE530677F0D97D11D49F7A8443D" +
		"0822E506A9F4614E011E2A94838FF88CD68C8BB7C5C6424CFFFFFFFFFFFFFFFF",
	G:         "02",
	SecretLen: 52,
	Name:      "ffdhe8192",
}

// Params lists the built-in parameter sets, smallest group first.
var Params = []*Param{FFDHE2048, FFDHE3072, FFDHE4096, FFDHE6144, FFDHE8192}

// decodeHex decodes a big-endian hexadecimal parameter string. Odd-length
// input and characters outside [0-9a-fA-F] fail with a decode error.
func decodeHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("ffdh: invalid hex parameter: %w", err)
	}
	return b, nil
}

// modulusContext returns the modulus context for p, deriving it on first use
// and caching it for the lifetime of the process. The cached pointer is the
// domain identity every element of this group is checked against.
func (p *Param) modulusContext() (*bigmod.Modulus, error) {
	p.once.Do(func() {
		pb, err := decodeHex(p.P)
		if err != nil {
			p.modErr = err
			return
		}
		p.modulus, p.modErr = bigmod.NewModulusFromBytes(pb)
	})
	return p.modulus, p.modErr
}
