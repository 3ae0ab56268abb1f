// This file is part of Gomars.
//
// Gomars is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gomars is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gomars.  If not, see <https://www.gnu.org/licenses/>.

package preferences_test

import (
	"testing"

	"github.com/jetsetilly/gomars/hardware/preferences"
	"github.com/jetsetilly/gomars/prefs"
	"github.com/jetsetilly/gomars/test"
)

func TestDefaults(t *testing.T) {
	p, err := preferences.NewPreferences()
	test.DemandSuccess(t, err)

	test.ExpectFailure(t, p.SelfModifyingCodeEnabled())
	test.ExpectFailure(t, p.AllowLogging())
	test.ExpectEquality(t, p.MemoryConfiguration.String(), "Default")
	test.ExpectEquality(t, p.String(), "mips.memoryConfiguration :: Default\nmips.selfModifyingCode :: false\nmips.trace :: false\n")
}

func TestSet(t *testing.T) {
	p, err := preferences.NewPreferences()
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, p.Set(preferences.KeySelfModifyingCode, "on"))
	test.ExpectSuccess(t, p.SelfModifyingCodeEnabled())

	test.ExpectSuccess(t, p.Set(preferences.KeyMemoryConfiguration, "CompactDataAtZero"))
	test.ExpectEquality(t, p.MemoryConfiguration.String(), "CompactDataAtZero")

	// unknown configurations are rejected and the value is unchanged
	test.ExpectFailure(t, p.Set(preferences.KeyMemoryConfiguration, "Bogus"))
	test.ExpectEquality(t, p.MemoryConfiguration.String(), "CompactDataAtZero")

	test.ExpectFailure(t, p.Set("mips.unknown", true))

	test.ExpectSuccess(t, p.SetDefaults())
	test.ExpectFailure(t, p.SelfModifyingCodeEnabled())
	test.ExpectEquality(t, p.MemoryConfiguration.String(), "Default")
}

func TestCommandLine(t *testing.T) {
	prefs.PushCommandLineStack("mips.selfModifyingCode::true; mips.trace::on")
	defer prefs.PopCommandLineStack()

	p, err := preferences.NewPreferences()
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, p.SelfModifyingCodeEnabled())
	test.ExpectSuccess(t, p.AllowLogging())
}
