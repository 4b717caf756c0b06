package core

// sphericalBlueNoise64 is a 64-point blue-noise distribution on the unit sphere
var sphericalBlueNoise64 = []Vec3{
	{X: 0.06719841, Y: -0.95855117, Z: -0.27688232},
	{X: 0.9578699, Y: -0.0032531766, Z: -0.2871842},
	{X: -0.8169513, Y: 0.25040236, Z: -0.5195082},
	{X: 0.4437619, Y: 0.6144255, Z: 0.6523469},
	{X: -0.20522565, Y: 0.9204008, Z: -0.33278316},
	{X: -0.34534046, Y: 0.54488707, Z: 0.7640928},
	{X: 0.12369734, Y: -0.56490684, Z: 0.81583023},
	{X: -0.25005588, Y: -0.76166075, Z: 0.5977833},
	{X: 0.80913216, Y: 0.41768932, Z: 0.41332895},
	{X: -0.4232499, Y: 0.7900235, Z: 0.44353345},
	{X: 0.7863261, Y: -0.31219956, Z: -0.53312534},
	{X: 0.4667257, Y: -0.2580736, Z: 0.84591085},
	{X: 0.06979886, Y: 0.8567019, Z: 0.5110681},
	{X: -0.58510876, Y: 0.8097824, Z: -0.043592248},
	{X: -0.778557, Y: 0.5645306, Z: 0.2741425},
	{X: 0.9481215, Y: 0.31560096, Z: 0.038226053},
	{X: 0.51279813, Y: 0.015121469, Z: -0.8583759},
	{X: -0.878782, Y: -0.44322756, Z: -0.17689466},
	{X: 0.74198866, Y: 0.23762214, Z: -0.6268878},
	{X: -0.11276091, Y: -0.47617903, Z: -0.87208855},
	{X: 0.4190057, Y: -0.719198, Z: 0.5542457},
	{X: 0.13493076, Y: -0.74644786, Z: -0.6516202},
	{X: 0.058858782, Y: 0.5146765, Z: 0.8553616},
	{X: -0.8842624, Y: -0.36535546, Z: 0.29085237},
	{X: 0.6012128, Y: 0.78297126, Z: -0.15968505},
	{X: -0.61283344, Y: -0.7594801, Z: -0.21823186},
	{X: 0.0847191, Y: -0.07356083, Z: -0.9936859},
	{X: -0.6315406, Y: 0.64514667, Z: -0.43004888},
	{X: 0.27817443, Y: 0.8790498, Z: -0.38715684},
	{X: 0.9603933, Y: -0.0602955, Z: 0.2720467},
	{X: -0.2927667, Y: -0.344799, Z: 0.89185274},
	{X: 0.4228658, Y: 0.51119643, Z: -0.74823976},
	{X: 0.027571838, Y: -0.9268116, Z: 0.37451282},
	{X: 0.5846646, Y: 0.76913804, Z: 0.2580584},
	{X: -0.6920372, Y: -0.10532027, Z: 0.71413696},
	{X: -0.6880917, Y: 0.32648668, Z: 0.64802474},
	{X: -0.2763285, Y: -0.96059257, Z: 0.030070698},
	{X: 0.5335626, Y: -0.6788355, Z: -0.50447303},
	{X: 0.71934, Y: 0.11597821, Z: 0.6849076},
	{X: 0.61804205, Y: -0.7744751, Z: -0.13495344},
	{X: 0.23013581, Y: 0.9704936, Z: 0.071968265},
	{X: -0.61610675, Y: -0.75332814, Z: 0.23001897},
	{X: 0.8029452, Y: 0.49623176, Z: -0.33020124},
	{X: -0.93354183, Y: 0.1029665, Z: 0.34336263},
	{X: 0.06210029, Y: -0.09567437, Z: 0.99347365},
	{X: 0.30318362, Y: -0.9497823, Z: 0.07741359},
	{X: 0.7226901, Y: -0.6446429, Z: 0.24930875},
	{X: 0.042306624, Y: 0.7202276, Z: -0.692447},
	{X: -0.31802693, Y: 0.13362445, Z: 0.93861777},
	{X: 0.9220656, Y: -0.3814953, Z: -0.065236494},
	{X: -0.59034693, Y: -0.4842521, Z: -0.64574784},
	{X: -0.39631927, Y: -0.15794349, Z: -0.904425},
	{X: 0.39526618, Y: -0.39908296, Z: -0.82734346},
	{X: -0.19609348, Y: 0.97428733, Z: 0.110957816},
	{X: -0.30288544, Y: -0.79785925, Z: -0.5212301},
	{X: -0.4875078, Y: 0.22043341, Z: -0.8448343},
	{X: -0.34082714, Y: 0.5958962, Z: -0.7271478},
	{X: 0.76323843, Y: -0.34081197, Z: 0.5489207},
	{X: -0.9173129, Y: 0.38252744, Z: -0.110497974},
	{X: -0.5981418, Y: -0.5180011, Z: 0.6114746},
	{X: 0.016898068, Y: 0.31932566, Z: -0.9474942},
	{X: -0.8171272, Y: -0.14419654, Z: -0.5581311},
	{X: -0.9961651, Y: -0.054192837, Z: -0.06869483},
	{X: 0.34877515, Y: 0.22429883, Z: 0.9099705},
}

// sphericalBlueNoise16 is a coarser 16-point set, used when a short sequence is enough
var sphericalBlueNoise16 = []Vec3{
	{X: 0.2642377, Y: 0.8333146, Z: -0.4855569},
	{X: 0.95293754, Y: 0.2802258, Z: -0.11568863},
	{X: 0.41527894, Y: 0.121686935, Z: -0.9015185},
	{X: 0.3184647, Y: 0.8710724, Z: 0.373916},
	{X: -0.75308466, Y: -0.22111271, Z: 0.6196553},
	{X: -0.026836863, Y: -0.7566735, Z: -0.6532417},
	{X: -0.00034593372, Y: -0.21745783, Z: 0.9760697},
	{X: -0.9792196, Y: 0.1657653, Z: -0.11683571},
	{X: 0.64774984, Y: -0.65245926, Z: 0.3933401},
	{X: 0.6681226, Y: 0.1880825, Z: 0.7198869},
	{X: -0.52438706, Y: 0.81266195, Z: -0.25416327},
	{X: -0.7322591, Y: -0.63822496, Z: -0.23762493},
	{X: -0.45351753, Y: 0.07909719, Z: -0.8877305},
	{X: -0.14146732, Y: -0.93057716, Z: 0.33765846},
	{X: -0.4267974, Y: 0.60968375, Z: 0.66792965},
	{X: 0.73487806, Y: -0.53804797, Z: -0.41286623},
}
