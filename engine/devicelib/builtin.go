package devicelib

// builtinDevices is the seed catalog: a representative Si/SiC/GaN spread in
// the voltage classes the DAB and SST topologies target. Values are reduced
// datasheet figures at standard test conditions.
var builtinDevices = []DeviceSpec{
	{
		Name: "C3M0015065K", Manufacturer: "Wolfspeed", Technology: "SiC",
		VdsMax: 650, IdMax: 120, RdsOn25C: 0.015, RdsOn125C: 0.021,
		QgTotal: 117e-9, Eon: 105e-6, Eoff: 30e-6,
		VfDiode: 4.2, Trr: 22e-9, Qrr: 170e-9,
		TjMax: 175, RthJC: 0.27, RthJA: 40, Coss: 140e-12, Package: "TO-247-4",
	},
	{
		Name: "C3M0075120K", Manufacturer: "Wolfspeed", Technology: "SiC",
		VdsMax: 1200, IdMax: 30, RdsOn25C: 0.075, RdsOn125C: 0.100,
		QgTotal: 51e-9, Eon: 305e-6, Eoff: 68e-6,
		VfDiode: 4.4, Trr: 28e-9, Qrr: 220e-9,
		TjMax: 175, RthJC: 0.58, RthJA: 40, Coss: 58e-12, Package: "TO-247-4",
	},
	{
		Name: "IMZA65R027M1H", Manufacturer: "Infineon", Technology: "SiC",
		VdsMax: 650, IdMax: 88, RdsOn25C: 0.027, RdsOn125C: 0.037,
		QgTotal: 62e-9, Eon: 120e-6, Eoff: 25e-6,
		VfDiode: 3.6, Trr: 18e-9, Qrr: 120e-9,
		TjMax: 175, RthJC: 0.46, RthJA: 42, Coss: 94e-12, Package: "TO-247-4",
	},
	{
		Name: "GS66516T", Manufacturer: "GaN Systems", Technology: "GaN",
		VdsMax: 650, IdMax: 60, RdsOn25C: 0.025, RdsOn125C: 0.045,
		QgTotal: 14.2e-9, Eon: 55e-6, Eoff: 13e-6,
		VfDiode: 0, Trr: 0, Qrr: 0,
		TjMax: 150, RthJC: 0.27, RthJA: 48, Coss: 130e-12, Package: "GaNPX",
	},
	{
		Name: "EPC2305", Manufacturer: "EPC", Technology: "GaN",
		VdsMax: 150, IdMax: 75, RdsOn25C: 0.0022, RdsOn125C: 0.0040,
		QgTotal: 11e-9, Eon: 18e-6, Eoff: 5e-6,
		VfDiode: 0, Trr: 0, Qrr: 0,
		TjMax: 150, RthJC: 0.45, RthJA: 55, Coss: 290e-12, Package: "BGA",
	},
	{
		Name: "IPW65R019C7", Manufacturer: "Infineon", Technology: "Si",
		VdsMax: 650, IdMax: 75, RdsOn25C: 0.019, RdsOn125C: 0.043,
		QgTotal: 150e-9, Eon: 190e-6, Eoff: 95e-6,
		VfDiode: 0.9, Trr: 480e-9, Qrr: 9.5e-6,
		TjMax: 150, RthJC: 0.29, RthJA: 62, Coss: 180e-12, Package: "TO-247",
	},
	{
		Name: "STW88N65M5", Manufacturer: "STMicroelectronics", Technology: "Si",
		VdsMax: 650, IdMax: 84, RdsOn25C: 0.029, RdsOn125C: 0.066,
		QgTotal: 200e-9, Eon: 230e-6, Eoff: 120e-6,
		VfDiode: 1.0, Trr: 420e-9, Qrr: 8.0e-6,
		TjMax: 150, RthJC: 0.26, RthJA: 50, Coss: 230e-12, Package: "TO-247",
	},
}
