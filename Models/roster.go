package Models

import "gorm.io/gorm"

// Doctor and Treatment are independent master lists. Patients reference them
// by name only; deleting an entry never cascades and a dangling name on a
// patient record is tolerated.

type Doctor struct {
	gorm.Model
	Name string `gorm:"size:255;not null;unique" json:"name"`
}

type Treatment struct {
	gorm.Model
	Name        string  `gorm:"size:255;not null;unique" json:"name"`
	PricePerDay float64 `json:"pricePerDay"`
}

func FindDoctors() ([]Doctor, error) {
	var doctors []Doctor
	if err := DB.Order("name ASC").Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

func AddDoctor(name string) (Doctor, error) {
	var count int64
	if err := DB.Model(&Doctor{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return Doctor{}, err
	}
	if count > 0 {
		return Doctor{}, ErrDoctorExists
	}
	doctor := Doctor{Name: name}
	if err := DB.Create(&doctor).Error; err != nil {
		return Doctor{}, err
	}
	return doctor, nil
}

// DeleteDoctor is a no-op when the id does not exist.
func DeleteDoctor(id uint) error {
	return DB.Delete(&Doctor{}, "id = ?", id).Error
}

func FindTreatments() ([]Treatment, error) {
	var treatments []Treatment
	if err := DB.Order("name ASC").Find(&treatments).Error; err != nil {
		return nil, err
	}
	return treatments, nil
}

func AddTreatment(name string, pricePerDay float64) (Treatment, error) {
	var count int64
	if err := DB.Model(&Treatment{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return Treatment{}, err
	}
	if count > 0 {
		return Treatment{}, ErrTreatmentExists
	}
	treatment := Treatment{Name: name, PricePerDay: pricePerDay}
	if err := DB.Create(&treatment).Error; err != nil {
		return Treatment{}, err
	}
	return treatment, nil
}

func UpdateTreatmentPrice(id uint, pricePerDay float64) error {
	return DB.Model(&Treatment{}).Where("id = ?", id).Update("price_per_day", pricePerDay).Error
}

func DeleteTreatment(id uint) error {
	return DB.Delete(&Treatment{}, "id = ?", id).Error
}
