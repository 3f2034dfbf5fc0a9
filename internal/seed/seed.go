// Package seed builds the sample dataset a fresh clinicdesk process starts with.
package seed

import (
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/facility"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/labtest"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/medical_record"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/medication"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/staff"
	"github.com/google/uuid"
)

type Dataset struct {
	Patients       []*patient.Patient              `json:"patients"`
	Staff          []*staff.StaffMember            `json:"staff"`
	Appointments   []*appointment.Appointment      `json:"appointments"`
	MedicalRecords []*medical_record.MedicalRecord `json:"medical_records"`
	LabTests       []*labtest.LabTest              `json:"lab_tests"`
	Medications    []*medication.Medication        `json:"medications"`
	Users          []*domain.User                  `json:"users"`
	Referrals      []*facility.Referral            `json:"referrals"`
	HealthPrograms []*facility.HealthProgram       `json:"health_programs"`
	Equipment      []*facility.Equipment           `json:"equipment"`
}

// Doctors returns the staff members with the doctor role, in seed order.
func (d *Dataset) Doctors() []*staff.StaffMember {
	var out []*staff.StaffMember
	for _, s := range d.Staff {
		if s.IsDoctor() {
			out = append(out, s)
		}
	}
	return out
}

// Build returns the fixed sample collections plus medical records and lab
// tests generated from them. The same randomSeed and now always produce the
// same dataset, ids included.
func Build(randomSeed uint64, now time.Time) *Dataset {
	ds := &Dataset{
		Patients:       samplePatients(),
		Staff:          sampleStaff(),
		Medications:    sampleMedications(),
		Users:          sampleUsers(),
		HealthPrograms: sampleHealthPrograms(),
		Equipment:      sampleEquipment(),
	}
	ds.Appointments = sampleAppointments(ds.Patients, ds.Staff)
	ds.Referrals = sampleReferrals(ds.Patients, ds.Staff)

	g := NewGenerator(randomSeed, now)
	doctors := ds.Doctors()
	ds.MedicalRecords = g.MedicalRecords(ds.Patients, doctors)
	ds.LabTests = g.LabTests(ds.Patients, doctors)

	return ds
}

var sampleNamespace = uuid.MustParse("5b0f7c1e-3d2a-4c8e-9f61-2a7d4e8b6c10")

// sampleID derives a stable id from a collection name and a natural key.
func sampleID(kind, key string) uuid.UUID {
	return uuid.NewSHA1(sampleNamespace, []byte(kind+"/"+key))
}

func samplePatients() []*patient.Patient {
	return []*patient.Patient{
		{
			ID: sampleID("patient", "John Doe"), FullName: "John Doe", DateOfBirth: domain.MustDate("1985-05-15"),
			Gender: patient.GenderMale, ContactPhone: "+233 55 123 4567", Email: "john.doe@example.com",
			Address:        "123 Main Street, East Legon",
			NextOfKin:      patient.NextOfKin{Name: "Jane Doe", Relationship: "Spouse", Contact: "+233 55 765 4321"},
			MedicalHistory: "Hypertension, Type 2 Diabetes",
			CreatedAt:      domain.MustDate("2023-01-15"), UpdatedAt: domain.MustDate("2023-06-20"),
		},
		{
			ID: sampleID("patient", "Alice Smith"), FullName: "Alice Smith", DateOfBirth: domain.MustDate("1992-10-22"),
			Gender: patient.GenderFemale, ContactPhone: "+233 20 888 9999", Email: "alice.smith@example.com",
			Address:        "456 Airport Road, Accra",
			NextOfKin:      patient.NextOfKin{Name: "Bob Smith", Relationship: "Brother", Contact: "+233 20 111 2222"},
			MedicalHistory: "Asthma, Allergies",
			CreatedAt:      domain.MustDate("2023-02-28"), UpdatedAt: domain.MustDate("2023-07-10"),
		},
		{
			ID: sampleID("patient", "Kwame Nkrumah"), FullName: "Kwame Nkrumah", DateOfBirth: domain.MustDate("1978-03-06"),
			Gender: patient.GenderMale, ContactPhone: "+233 24 333 4444", Email: "kwame.nkrumah@example.com",
			Address:        "789 Liberation Avenue, Kumasi",
			NextOfKin:      patient.NextOfKin{Name: "Ama Serwaa", Relationship: "Sister", Contact: "+233 24 555 6666"},
			MedicalHistory: "None",
			CreatedAt:      domain.MustDate("2023-03-10"), UpdatedAt: domain.MustDate("2023-08-01"),
		},
		{
			ID: sampleID("patient", "Akosua Mensah"), FullName: "Akosua Mensah", DateOfBirth: domain.MustDate("1989-11-18"),
			Gender: patient.GenderFemale, ContactPhone: "+233 50 999 0000", Email: "akosua.mensah@example.com",
			Address:        "10 Independence Square, Accra",
			NextOfKin:      patient.NextOfKin{Name: "Kofi Mensah", Relationship: "Husband", Contact: "+233 50 111 2222"},
			MedicalHistory: "Anemia",
			CreatedAt:      domain.MustDate("2023-04-01"), UpdatedAt: domain.MustDate("2023-09-05"),
		},
		{
			ID: sampleID("patient", "Yaw Boateng"), FullName: "Yaw Boateng", DateOfBirth: domain.MustDate("1965-07-29"),
			Gender: patient.GenderMale, ContactPhone: "+233 54 777 8888", Email: "yaw.boateng@example.com",
			Address:        "11 High Street, Cape Coast",
			NextOfKin:      patient.NextOfKin{Name: "Abena Dapaah", Relationship: "Wife", Contact: "+233 54 333 4444"},
			MedicalHistory: "Arthritis",
			CreatedAt:      domain.MustDate("2023-05-20"), UpdatedAt: domain.MustDate("2023-10-12"),
		},
	}
}

func weekdays(hours, friday string) staff.Schedule {
	return staff.Schedule{
		Monday: hours, Tuesday: hours, Wednesday: hours, Thursday: hours,
		Friday: friday, Saturday: "Off", Sunday: "Off",
	}
}

func sampleStaff() []*staff.StaffMember {
	owusu := weekdays("10:00 AM - 6:00 PM", "10:00 AM - 3:00 PM")
	owusu.Wednesday = "Off"

	return []*staff.StaffMember{
		{
			ID: sampleID("staff", "Dr. Jescaps Antwi"), Name: "Dr. Jescaps Antwi", Role: domain.RoleDoctor, Specialization: "General Medicine",
			ContactPhone: "+233 55 111 2222", Email: "jescaps.antwi@ashesi.edu.gh",
			Schedule: weekdays("8:00 AM - 4:00 PM", "8:00 AM - 2:00 PM"),
		},
		{
			ID: sampleID("staff", "Nurse Emelia Thompson"), Name: "Nurse Emelia Thompson", Role: domain.RoleNurse,
			ContactPhone: "+233 20 333 4444", Email: "emelia.thompson@example.com",
			Schedule: weekdays("9:00 AM - 5:00 PM", "9:00 AM - 1:00 PM"),
		},
		{
			ID: sampleID("staff", "Dr. Kwame Owusu"), Name: "Dr. Kwame Owusu", Role: domain.RoleDoctor, Specialization: "Cardiology",
			ContactPhone: "+233 24 888 9999", Email: "kwame.owusu@example.com",
			Schedule: owusu,
		},
		{
			ID: sampleID("staff", "Lab Tech Patricia Mensah"), Name: "Lab Tech Patricia Mensah", Role: domain.RoleLabTechnician,
			ContactPhone: "+233 50 555 6666", Email: "patricia.mensah@example.com",
			Schedule: weekdays("7:00 AM - 3:00 PM", "7:00 AM - 12:00 PM"),
		},
		{
			ID: sampleID("staff", "Receptionist Abena Koomson"), Name: "Receptionist Abena Koomson", Role: domain.RoleReceptionist,
			ContactPhone: "+233 54 222 3333", Email: "abena.koomson@example.com",
			Schedule: weekdays("8:00 AM - 4:00 PM", "8:00 AM - 2:00 PM"),
		},
	}
}

func sampleAppointments(patients []*patient.Patient, members []*staff.StaffMember) []*appointment.Appointment {
	book := func(p, d int, date, clock, reason string, status appointment.AppointmentStatus, notes string) *appointment.Appointment {
		return &appointment.Appointment{
			ID:          sampleID("appointment", date+" "+clock+" "+patients[p].FullName),
			PatientID:   patients[p].ID,
			PatientName: patients[p].FullName,
			DoctorID:    members[d].ID,
			DoctorName:  members[d].Name,
			Date:        domain.MustDate(date),
			Time:        clock,
			Reason:      reason,
			Status:      status,
			Notes:       notes,
		}
	}

	return []*appointment.Appointment{
		book(0, 0, "2023-09-15", "09:30", "Follow-up appointment", appointment.StatusCompleted, "Patient should bring previous test results"),
		book(1, 2, "2023-09-16", "11:00", "Initial consultation", appointment.StatusScheduled, "New patient, gather detailed history"),
		book(2, 0, "2023-09-17", "14:00", "Check-up", appointment.StatusScheduled, "Routine check-up, no specific complaints"),
		book(3, 2, "2023-09-18", "10:00", "ECG", appointment.StatusCompleted, "Patient experienced chest pains"),
		book(4, 0, "2023-09-19", "16:00", "Physical therapy", appointment.StatusScheduled, "Advised regular exercise"),
	}
}

func sampleMedications() []*medication.Medication {
	med := func(name, dosage string, current, minimum int, expiry string) *medication.Medication {
		return &medication.Medication{
			ID:           sampleID("medication", name),
			Name:         name,
			Dosage:       dosage,
			CurrentStock: current,
			MinimumStock: minimum,
			ExpiryDate:   domain.MustDate(expiry),
		}
	}

	return []*medication.Medication{
		med("Paracetamol", "500mg tablets", 350, 100, "2025-12-15"),
		med("Ibuprofen", "400mg tablets", 120, 100, "2025-08-20"),
		med("Amoxicillin", "250mg capsules", 80, 100, "2025-05-10"),
		med("Metformin", "500mg tablets", 200, 150, "2026-02-28"),
		med("Amlodipine", "5mg tablets", 60, 75, "2025-09-10"),
		med("Cetirizine", "10mg tablets", 130, 80, "2025-07-22"),
		med("Omeprazole", "20mg capsules", 95, 100, "2025-11-15"),
		med("Salbutamol", "100mcg inhaler", 25, 30, "2025-06-18"),
		med("Metoprolol", "50mg tablets", 180, 100, "2026-03-25"),
		med("Lisinopril", "10mg tablets", 40, 50, "2025-08-05"),
	}
}

func sampleUsers() []*domain.User {
	return []*domain.User{
		{ID: sampleID("user", "adobea.odame@ashesi.edu.gh"), Name: "Admin User", Email: "adobea.odame@ashesi.edu.gh", Role: domain.RoleAdmin, Avatar: "/avatars/admin.png"},
		{ID: sampleID("user", "jescaps.antwi@ashesi.edu.gh"), Name: "Dr. Jescaps Antwi", Email: "jescaps.antwi@ashesi.edu.gh", Role: domain.RoleDoctor, Avatar: "/avatars/doctor.png"},
		{ID: sampleID("user", "nanaakua.oduraa@ashesi.edu.gh"), Name: "Nurse Nanaakua Oduraa", Email: "nanaakua.oduraa@ashesi.edu.gh", Role: domain.RoleNurse, Avatar: "/avatars/nurse.png"},
		{ID: sampleID("user", "patricia.mensah@example.com"), Name: "Lab Tech Patricia Mensah", Email: "patricia.mensah@example.com", Role: domain.RoleLabTechnician, Avatar: "/avatars/lab_tech.png"},
		{ID: sampleID("user", "abena.koomson@example.com"), Name: "Receptionist Abena Koomson", Email: "abena.koomson@example.com", Role: domain.RoleReceptionist, Avatar: "/avatars/receptionist.png"},
	}
}

func sampleReferrals(patients []*patient.Patient, members []*staff.StaffMember) []*facility.Referral {
	return []*facility.Referral{
		{
			ID: sampleID("referral", patients[3].FullName), PatientID: patients[3].ID, PatientName: patients[3].FullName,
			ReferredTo: "Korle Bu Teaching Hospital, Cardiothoracic Centre", ReferredBy: members[2].Name,
			Reason: "Abnormal ECG, specialist cardiac assessment", Date: domain.MustDate("2023-09-18"),
			Status: facility.ReferralPending,
		},
		{
			ID: sampleID("referral", patients[4].FullName), PatientID: patients[4].ID, PatientName: patients[4].FullName,
			ReferredTo: "Cape Coast Physiotherapy Clinic", ReferredBy: members[0].Name,
			Reason: "Physiotherapy for chronic arthritis", Date: domain.MustDate("2023-08-02"),
			Status: facility.ReferralCompleted, Notes: "Six sessions completed",
		},
	}
}

func sampleHealthPrograms() []*facility.HealthProgram {
	return []*facility.HealthProgram{
		{
			ID: sampleID("program", "Community Hypertension Screening"), Name: "Community Hypertension Screening",
			Description: "Free blood pressure checks and lifestyle counselling",
			StartDate:   domain.MustDate("2023-10-02"), EndDate: domain.MustDate("2023-10-06"),
			Location: "Berekuso Community Centre", Coordinator: "Nurse Emelia Thompson",
			ParticipantsCount: 120, Status: facility.ProgramUpcoming,
		},
		{
			ID: sampleID("program", "Childhood Immunization Drive"), Name: "Childhood Immunization Drive",
			Description: "Routine vaccines for children under five",
			StartDate:   domain.MustDate("2023-09-01"), EndDate: domain.MustDate("2023-09-30"),
			Location: "Ashesi Clinic", Coordinator: "Dr. Jescaps Antwi",
			ParticipantsCount: 340, Status: facility.ProgramOngoing,
		},
		{
			ID: sampleID("program", "Diabetes Awareness Week"), Name: "Diabetes Awareness Week",
			Description: "Blood glucose testing and diet workshops",
			StartDate:   domain.MustDate("2023-06-12"), EndDate: domain.MustDate("2023-06-16"),
			Location: "Aburi Market Square", Coordinator: "Dr. Kwame Owusu",
			ParticipantsCount: 210, Status: facility.ProgramCompleted,
		},
	}
}

func sampleEquipment() []*facility.Equipment {
	return []*facility.Equipment{
		{
			ID: sampleID("equipment", "ECG-2021-0042"), Name: "ECG Machine", Model: "CardioLine 300", SerialNumber: "ECG-2021-0042",
			PurchaseDate: domain.MustDate("2021-03-15"), LastMaintenanceDate: domain.MustDate("2023-06-01"),
			NextMaintenanceDate: domain.MustDate("2023-12-01"), Status: facility.EquipmentOperational,
		},
		{
			ID: sampleID("equipment", "US-2020-0117"), Name: "Ultrasound Scanner", Model: "SonoView X5", SerialNumber: "US-2020-0117",
			PurchaseDate: domain.MustDate("2020-08-20"), LastMaintenanceDate: domain.MustDate("2023-02-10"),
			NextMaintenanceDate: domain.MustDate("2023-08-10"), Status: facility.EquipmentMaintenanceRequired,
		},
		{
			ID: sampleID("equipment", "AC-2019-0008"), Name: "Autoclave Sterilizer", Model: "SteriPro 40L", SerialNumber: "AC-2019-0008",
			PurchaseDate: domain.MustDate("2019-01-05"), LastMaintenanceDate: domain.MustDate("2023-01-20"),
			NextMaintenanceDate: domain.MustDate("2024-01-20"), Status: facility.EquipmentOutOfService,
		},
	}
}
